package comment

import (
	"sort"

	"kweezy.app/server/internal/modules/comment/dto"
)

// Injection targets: one randomized relocation to the 3rd position picking
// from the tail past it, then one to the 5th position picking from the tail
// past that, evaluated after the first pass has already mutated the list.
const (
	injectTargetA = 2
	injectPoolA   = 3
	injectTargetB = 4
	injectPoolB   = 5
)

// rankComments orders a segment's full comment list: popularity first,
// recency as tie-break, then two controlled random injections so lower-ranked
// comments surface at fixed shallow positions. randInt must return a uniform
// value in [0, n); it is injectable so tests can pin the draws.
func rankComments(comments []dto.CommentResponse, randInt func(n int) int) []dto.CommentResponse {
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].LikeCount != comments[j].LikeCount {
			return comments[i].LikeCount > comments[j].LikeCount
		}
		// Equal like counts: newest first
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})

	comments = injectRandomComment(comments, injectTargetA, injectPoolA, randInt)
	comments = injectRandomComment(comments, injectTargetB, injectPoolB, randInt)

	return comments
}

// injectRandomComment moves one uniformly chosen comment from the pool at
// indices >= poolStart to targetIndex. Positions before targetIndex are never
// touched. No-op when the pool is empty.
func injectRandomComment(comments []dto.CommentResponse, targetIndex, poolStart int, randInt func(n int) int) []dto.CommentResponse {
	if poolStart <= targetIndex {
		poolStart = targetIndex + 1
	}
	if len(comments) <= poolStart {
		return comments
	}

	randomIndex := poolStart + randInt(len(comments)-poolStart)

	picked := comments[randomIndex]
	// Splice out, then reinsert at the target
	comments = append(comments[:randomIndex], comments[randomIndex+1:]...)
	comments = append(comments, dto.CommentResponse{})
	copy(comments[targetIndex+1:], comments[targetIndex:])
	comments[targetIndex] = picked

	return comments
}

// paginate slices one page out of the ranked full list.
func paginate(comments []dto.CommentResponse, page, limit int) []dto.CommentResponse {
	start := (page - 1) * limit
	if start >= len(comments) {
		return []dto.CommentResponse{}
	}
	end := start + limit
	if end > len(comments) {
		end = len(comments)
	}
	return comments[start:end]
}
