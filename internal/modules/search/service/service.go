package search

import (
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"kweezy.app/server/internal/entity"
)

const (
	novelIndex = "novels"
	blogIndex  = "blog_posts"
)

// SearchService keeps the Meilisearch indexes in step with the catalog.
// Indexing is best effort: failures are logged and never fail the request
// that triggered them.
type SearchService interface {
	IndexNovel(novel *entity.Novel) error
	DeleteNovel(id int64) error
	IndexBlogPost(post *entity.BlogPost) error
	DeleteBlogPost(id int64) error
	SearchNovels(query string, limit int64) ([]map[string]interface{}, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	if s.client == nil {
		return
	}

	if _, err := s.client.Index(novelIndex).UpdateSearchableAttributes(&[]string{"title", "authorName", "description"}); err != nil {
		log.Printf("Failed to update novels searchable attributes: %v", err)
	}

	if _, err := s.client.Index(blogIndex).UpdateSearchableAttributes(&[]string{"title", "content"}); err != nil {
		log.Printf("Failed to update blog_posts searchable attributes: %v", err)
	}
}

func (s *searchService) IndexNovel(novel *entity.Novel) error {
	if s.client == nil {
		return nil
	}

	doc := map[string]interface{}{
		"id":          novel.ID,
		"title":       novel.Title,
		"authorName":  novel.AuthorName,
		"description": s.sanitize(novel.Description),
		"createdAt":   novel.CreatedAt.Unix(),
	}

	_, err := s.client.Index(novelIndex).AddDocuments([]map[string]interface{}{doc}, nil)
	if err != nil {
		return fmt.Errorf("failed to index novel %d: %w", novel.ID, err)
	}
	return nil
}

func (s *searchService) DeleteNovel(id int64) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(novelIndex).DeleteDocument(fmt.Sprintf("%d", id))
	return err
}

func (s *searchService) IndexBlogPost(post *entity.BlogPost) error {
	if s.client == nil {
		return nil
	}
	// Drafts never enter the index
	if post.PublishedAt == nil {
		return s.DeleteBlogPost(post.ID)
	}

	doc := map[string]interface{}{
		"id":          post.ID,
		"title":       post.Title,
		"content":     s.sanitize(post.Content),
		"publishedAt": post.PublishedAt.Unix(),
	}

	_, err := s.client.Index(blogIndex).AddDocuments([]map[string]interface{}{doc}, nil)
	if err != nil {
		return fmt.Errorf("failed to index blog post %d: %w", post.ID, err)
	}
	return nil
}

func (s *searchService) DeleteBlogPost(id int64) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(blogIndex).DeleteDocument(fmt.Sprintf("%d", id))
	return err
}

func (s *searchService) SearchNovels(query string, limit int64) ([]map[string]interface{}, error) {
	if s.client == nil {
		return []map[string]interface{}{}, nil
	}

	resp, err := s.client.Index(novelIndex).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	hits := make([]map[string]interface{}, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		m := map[string]interface{}{}
		if err := hit.Decode(&m); err == nil {
			hits = append(hits, m)
		}
	}
	return hits, nil
}

func (s *searchService) sanitize(content string) string {
	cleaned := s.sanitizer.Sanitize(content)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
