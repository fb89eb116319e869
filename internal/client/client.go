// Package client provides a Go client for the board API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a board API client. APIKey, when set, is sent as a bearer
// credential on every request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
}

// New creates a new client. baseURL includes any API prefix, e.g.
// "http://localhost:8080/api/v1".
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Member represents a member from the API.
type Member struct {
	ID         int64     `json:"id"`
	CreateDate time.Time `json:"createDate"`
	ModifyDate time.Time `json:"modifyDate"`
	Name       string    `json:"name"`
}

// Post represents a post from the API.
type Post struct {
	ID         int64     `json:"id"`
	CreateDate time.Time `json:"createDate"`
	ModifyDate time.Time `json:"modifyDate"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
}

// Comment represents a comment from the API.
type Comment struct {
	ID         int64     `json:"id"`
	CreateDate time.Time `json:"createDate"`
	ModifyDate time.Time `json:"modifyDate"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	PostID     int64     `json:"postId"`
}

// Result is the envelope returned by mutating endpoints.
type Result struct {
	ResultCode string          `json:"resultCode"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Errors
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyRegistered = errors.New("already registered")
)

// APIError is a failed request. ResultCode and Msg are empty when the
// server answered without an envelope.
type APIError struct {
	StatusCode int
	ResultCode string
	Msg        string
}

func (e *APIError) Error() string {
	if e.ResultCode == "" {
		return fmt.Sprintf("request failed (%d)", e.StatusCode)
	}
	return fmt.Sprintf("request failed (%d): %s %s", e.StatusCode, e.ResultCode, e.Msg)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrAlreadyRegistered:
		return e.ResultCode == "409-1"
	}
	return false
}

// doRequest performs an HTTP request, authenticated when APIKey is set.
func (c *Client) doRequest(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	return c.HTTPClient.Do(req)
}

// call performs a request and decodes a successful body into out, which
// may be nil.
func (c *Client) call(method, path string, body, out any) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var rs Result
		if len(respBody) > 0 && json.Unmarshal(respBody, &rs) == nil {
			apiErr.ResultCode = rs.ResultCode
			apiErr.Msg = rs.Msg
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// result performs an enveloped request and decodes its data into out.
func (c *Client) result(method, path string, body, out any) (*Result, error) {
	var rs Result
	if err := c.call(method, path, body, &rs); err != nil {
		return nil, err
	}
	if out != nil && len(rs.Data) > 0 {
		if err := json.Unmarshal(rs.Data, out); err != nil {
			return nil, fmt.Errorf("decode %s %s data: %w", method, path, err)
		}
	}
	return &rs, nil
}

// Join registers a new member.
func (c *Client) Join(username, password, nickname string) (*Member, error) {
	reqBody := map[string]string{
		"username": username,
		"password": password,
		"nickname": nickname,
	}
	var data struct {
		MemberDTO Member `json:"memberDto"`
	}
	if _, err := c.result(http.MethodPost, "/members/join", reqBody, &data); err != nil {
		return nil, err
	}
	return &data.MemberDTO, nil
}

// Login checks the credentials and stores the returned API key on the
// client.
func (c *Client) Login(username, password string) (*Member, error) {
	reqBody := map[string]string{"username": username, "password": password}
	var data struct {
		MemberDTO Member `json:"memberDto"`
		APIKey    string `json:"apiKey"`
	}
	if _, err := c.result(http.MethodPost, "/members/login", reqBody, &data); err != nil {
		return nil, err
	}
	c.APIKey = data.APIKey
	return &data.MemberDTO, nil
}

// Me returns the member the API key belongs to.
func (c *Client) Me() (*Member, error) {
	var data struct {
		MemberDTO Member `json:"memberDto"`
	}
	if _, err := c.result(http.MethodGet, "/members/me", nil, &data); err != nil {
		return nil, err
	}
	return &data.MemberDTO, nil
}

// ListPosts fetches every post, newest first.
func (c *Client) ListPosts() ([]Post, error) {
	var posts []Post
	if err := c.call(http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(id int64) (*Post, error) {
	var post Post
	if err := c.call(http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// WritePost creates a post as the client's member.
func (c *Client) WritePost(title, content string) (*Post, error) {
	reqBody := map[string]string{"title": title, "content": content}
	var data struct {
		PostDTO Post `json:"postDto"`
	}
	if _, err := c.result(http.MethodPost, "/posts", reqBody, &data); err != nil {
		return nil, err
	}
	return &data.PostDTO, nil
}

func (c *Client) ModifyPost(id int64, title, content string) (*Result, error) {
	reqBody := map[string]string{"title": title, "content": content}
	return c.result(http.MethodPut, fmt.Sprintf("/posts/%d", id), reqBody, nil)
}

// DeletePost deletes a post you own together with its comments.
func (c *Client) DeletePost(id int64) (*Result, error) {
	return c.result(http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}

// ListComments fetches the comments of a post, newest first.
func (c *Client) ListComments(postID int64) ([]Comment, error) {
	var comments []Comment
	if err := c.call(http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) GetComment(postID, commentID int64) (*Comment, error) {
	var comment Comment
	path := fmt.Sprintf("/posts/%d/comments/%d", postID, commentID)
	if err := c.call(http.MethodGet, path, nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) WriteComment(postID int64, content string) (*Comment, error) {
	reqBody := map[string]string{"content": content}
	var data struct {
		CommentDTO Comment `json:"commentDto"`
	}
	path := fmt.Sprintf("/posts/%d/comments", postID)
	if _, err := c.result(http.MethodPost, path, reqBody, &data); err != nil {
		return nil, err
	}
	return &data.CommentDTO, nil
}

func (c *Client) ModifyComment(postID, commentID int64, content string) (*Result, error) {
	reqBody := map[string]string{"content": content}
	path := fmt.Sprintf("/posts/%d/comments/%d", postID, commentID)
	return c.result(http.MethodPut, path, reqBody, nil)
}

func (c *Client) DeleteComment(postID, commentID int64) (*Result, error) {
	path := fmt.Sprintf("/posts/%d/comments/%d", postID, commentID)
	return c.result(http.MethodDelete, path, nil, nil)
}

// TestHelper provides utilities for creating authenticated clients in tests.
type TestHelper struct {
	BaseURL string
}

// NewTestHelper creates a new test helper for the given base URL.
func NewTestHelper(baseURL string) *TestHelper {
	return &TestHelper{BaseURL: baseURL}
}

// CreateAuthenticatedClient joins a member with the given username (its
// nickname and password derived from it) and returns a logged-in client.
// A member that already exists is logged in instead.
func (h *TestHelper) CreateAuthenticatedClient(username string) (*Client, error) {
	c := New(h.BaseURL)
	password := username + "-pw"
	if _, err := c.Join(username, password, username); err != nil && !errors.Is(err, ErrAlreadyRegistered) {
		return nil, fmt.Errorf("join %s: %w", username, err)
	}
	if _, err := c.Login(username, password); err != nil {
		return nil, fmt.Errorf("login %s: %w", username, err)
	}
	return c, nil
}

// GetAPIKey is CreateAuthenticatedClient for tests that need just the key.
func (h *TestHelper) GetAPIKey(username string) (string, error) {
	c, err := h.CreateAuthenticatedClient(username)
	if err != nil {
		return "", err
	}
	return c.APIKey, nil
}
