package reader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the reading platform API. A zero token works for the
// public catalog endpoints; progress and comment writes need a login.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Novel struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	AuthorName    string    `json:"authorName"`
	Description   string    `json:"description"`
	CoverImageURL *string   `json:"coverImageUrl"`
	Chapters      []Chapter `json:"chapters"`
	UserProgress  *Progress `json:"userProgress"`
}

type Chapter struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	ChapterNumber int    `json:"chapterNumber"`
}

type Segment struct {
	ID           int64  `json:"id"`
	SegmentIndex int    `json:"segmentIndex"`
	SegmentType  string `json:"segmentType"`
	TextContent  string `json:"textContent"`
}

type CommentUser struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	UsernameColor *string `json:"usernameColor"`
}

type Comment struct {
	ID                 int64       `json:"id"`
	CommentText        string      `json:"commentText"`
	ParentCommentID    *int64      `json:"parentCommentId"`
	CreatedAt          time.Time   `json:"createdAt"`
	User               CommentUser `json:"user"`
	LikeCount          int64       `json:"likeCount"`
	LikedByCurrentUser bool        `json:"likedByCurrentUser"`
}

type CommentPage struct {
	Comments    []Comment `json:"comments"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
}

type Progress struct {
	NovelID           int64   `json:"novelId"`
	LastReadChapterID int64   `json:"lastReadChapterId"`
	LastReadScrollY   float64 `json:"lastReadScrollY"`
	Chapter           struct {
		ChapterNumber int `json:"chapterNumber"`
	} `json:"chapter"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

// Authenticated reports whether the client holds a token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

func (c *Client) Login(email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/api/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status: %s", resp.Status)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	c.token = result.Token
	return result.Token, nil
}

func (c *Client) ListNovels() ([]Novel, error) {
	var novels []Novel
	if err := c.get(c.baseURL+"/api/novels", &novels); err != nil {
		return nil, err
	}
	return novels, nil
}

func (c *Client) GetNovel(novelID int64) (*Novel, error) {
	var novel Novel
	if err := c.get(fmt.Sprintf("%s/api/novels/%d", c.baseURL, novelID), &novel); err != nil {
		return nil, err
	}
	return &novel, nil
}

func (c *Client) GetChapterSegments(chapterID int64) ([]Segment, error) {
	var segments []Segment
	if err := c.get(fmt.Sprintf("%s/api/chapters/%d/segments", c.baseURL, chapterID), &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func (c *Client) GetSegmentComments(segmentID int64, page, limit int) (*CommentPage, error) {
	var result CommentPage
	url := fmt.Sprintf("%s/api/segments/%d/comments?page=%d&limit=%d", c.baseURL, segmentID, page, limit)
	if err := c.get(url, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) PostComment(segmentID int64, text string, parentID *int64) (*Comment, error) {
	body, err := json.Marshal(map[string]interface{}{
		"commentText":     text,
		"parentCommentId": parentID,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/api/segments/%d/comments", c.baseURL, segmentID), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to post comment: %s", resp.Status)
	}

	var result Comment
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProgress returns nil without error when the server has no saved
// position for this novel.
func (c *Client) GetProgress(novelID int64) (*Progress, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/api/novels/%d/progress", c.baseURL, novelID), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get progress: %s", resp.Status)
	}

	var result *Progress
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) SaveProgress(novelID, chapterID int64, scrollY float64) error {
	body, err := json.Marshal(map[string]interface{}{
		"lastReadChapterId": chapterID,
		"lastReadScrollY":   scrollY,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("PUT", fmt.Sprintf("%s/api/novels/%d/progress", c.baseURL, novelID), bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to save progress: %s", resp.Status)
	}
	return nil
}

func (c *Client) get(url string, out interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
