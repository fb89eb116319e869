package httpapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rest1/board/docs"
	"github.com/rest1/board/internal/config"
	"github.com/rest1/board/internal/logging"
	"github.com/rest1/board/internal/store/memory"
)

// result mirrors the response envelope with the payload left raw.
type result struct {
	ResultCode string          `json:"resultCode"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type testServer struct {
	t   *testing.T
	srv *Server
}

func newTestServer(t *testing.T, cfg config.Config) *testServer {
	t.Helper()
	if cfg.Lang == "" {
		cfg.Lang = "ko"
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}
	srv, err := NewServer(memory.New(), cfg, logging.Discard())
	require.NoError(t, err)
	return &testServer{t: t, srv: srv}
}

func (ts *testServer) do(method, path, body, apiKey string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) doWithHeader(method, path, body, authorization string) *httptest.ResponseRecorder {
	ts.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	return rec
}

// join registers a member and logs in, returning the API key.
func (ts *testServer) join(username, nickname string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/members/join",
		`{"username":"`+username+`","password":"1234","nickname":"`+nickname+`"}`, "")
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodPost, "/members/login", `{"username":"`+username+`","password":"1234"}`, "")
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())
	var login LoginResponse
	decodeData(ts.t, rec, &login)
	require.NotEmpty(ts.t, login.APIKey)
	return login.APIKey
}

func (ts *testServer) writePost(apiKey, title, content string) PostDTO {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/posts", `{"title":"`+title+`","content":"`+content+`"}`, apiKey)
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var out PostWriteResponse
	decodeData(ts.t, rec, &out)
	return out.PostDTO
}

func (ts *testServer) writeComment(apiKey string, postID int64, content string) CommentDTO {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/posts/"+formatID(postID)+"/comments", `{"content":"`+content+`"}`, apiKey)
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var out CommentWriteResponse
	decodeData(ts.t, rec, &out)
	return out.CommentDTO
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) result {
	t.Helper()
	var rs result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rs), rec.Body.String())
	return rs
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	rs := decodeResult(t, rec)
	require.NoError(t, json.Unmarshal(rs.Data, dest))
}

func TestJoin(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	rec := ts.do(http.MethodPost, "/members/join", `{"username":"user1","password":"1234","nickname":"유저1"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rs := decodeResult(t, rec)
	assert.Equal(t, "201-1", rs.ResultCode)
	assert.Equal(t, "회원가입이 완료되었습니다. 유저1님 환영합니다.", rs.Msg)

	var out JoinResponse
	require.NoError(t, json.Unmarshal(rs.Data, &out))
	assert.Equal(t, int64(1), out.MemberDTO.ID)
	assert.Equal(t, "유저1", out.MemberDTO.Name)
	assert.False(t, out.MemberDTO.CreateDate.IsZero())

	rec = ts.do(http.MethodPost, "/members/join", `{"username":"user1","password":"5678","nickname":"다른"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	rs = decodeResult(t, rec)
	assert.Equal(t, "409-1", rs.ResultCode)
	assert.Equal(t, "이미 사용중인 아이디입니다.", rs.Msg)
	assert.Empty(t, rs.Data)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.join("user1", "유저1")

	rec := ts.do(http.MethodPost, "/members/login", `{"username":"user1","password":"1234"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rs := decodeResult(t, rec)
	assert.Equal(t, "200-1", rs.ResultCode)
	assert.Equal(t, "user1님 환영합니다.", rs.Msg)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"unknown username", `{"username":"nobody","password":"1234"}`, "401-1"},
		{"wrong password", `{"username":"user1","password":"9999"}`, "401-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPost, "/members/login", tt.body, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.code, decodeResult(t, rec).ResultCode)
		})
	}
}

func TestLoginReturnsStableAPIKey(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	first := ts.join("user1", "유저1")

	rec := ts.do(http.MethodPost, "/members/login", `{"username":"user1","password":"1234"}`, "")
	var login LoginResponse
	decodeData(t, rec, &login)
	assert.Equal(t, first, login.APIKey)
}

func TestMe(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")

	rec := ts.do(http.MethodGet, "/members/me", "", key)
	require.Equal(t, http.StatusOK, rec.Code)
	rs := decodeResult(t, rec)
	assert.Equal(t, "200-1", rs.ResultCode)
	assert.Equal(t, "OK", rs.Msg)

	var me MeResponse
	require.NoError(t, json.Unmarshal(rs.Data, &me))
	assert.Equal(t, "유저1", me.MemberDTO.Name)
}

func TestAuthenticationHeader(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing", "", http.StatusUnauthorized, "401-1"},
		{"blank", "   ", http.StatusUnauthorized, "401-1"},
		{"wrong scheme", "Token " + key, http.StatusUnauthorized, "401-2"},
		{"lowercase scheme", "bearer " + key, http.StatusUnauthorized, "401-2"},
		{"unknown key", "Bearer not-a-key", http.StatusUnauthorized, "401-3"},
		{"empty key", "Bearer ", http.StatusUnauthorized, "401-3"},
		{"padded key", "Bearer  " + key + "  ", http.StatusUnauthorized, "401-3"},
		{"valid", "Bearer " + key, http.StatusOK, "200-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.doWithHeader(http.MethodGet, "/members/me", "", tt.header)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeResult(t, rec).ResultCode)
		})
	}
}

func TestValidationPrecedesAuthentication(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")
	postID := ts.writePost(key, "제목", "내용").ID

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"write post", http.MethodPost, "/posts"},
		{"modify post", http.MethodPut, "/posts/" + formatID(postID)},
		{"write comment", http.MethodPost, "/posts/" + formatID(postID) + "/comments"},
		{"modify comment", http.MethodPut, "/posts/" + formatID(postID) + "/comments/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(tt.method, tt.path, `{"title":"","content":""}`, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			rs := decodeResult(t, rec)
			assert.Equal(t, "400-1", rs.ResultCode)
			assert.Contains(t, rs.Msg, "content-NotBlank-must not be blank")

			rec = ts.do(tt.method, tt.path, `{`, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "400-2", decodeResult(t, rec).ResultCode)

			rec = ts.do(tt.method, tt.path, `{"title":"제목2","content":"내용2"}`, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "401-1", decodeResult(t, rec).ResultCode)
		})
	}
}

func TestValidationFailure(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")

	tests := []struct {
		name string
		path string
		body string
		msg  string
	}{
		{
			name: "blank title and short content",
			path: "/posts",
			body: `{"title":"","content":"a"}`,
			msg: "content-Size-size must be between 2 and 100\n" +
				"title-NotBlank-must not be blank\n" +
				"title-Size-size must be between 2 and 10",
		},
		{
			name: "title too long",
			path: "/posts",
			body: `{"title":"12345678901","content":"내용"}`,
			msg:  "title-Size-size must be between 2 and 10",
		},
		{
			name: "absent fields",
			path: "/posts",
			body: `{}`,
			msg: "content-NotBlank-must not be blank\n" +
				"title-NotBlank-must not be blank",
		},
		{
			name: "absent title",
			path: "/posts",
			body: `{"content":"ok content"}`,
			msg:  "title-NotBlank-must not be blank",
		},
		{
			name: "null title and empty content",
			path: "/posts",
			body: `{"title":null,"content":""}`,
			msg: "content-NotBlank-must not be blank\n" +
				"content-Size-size must be between 2 and 100\n" +
				"title-NotBlank-must not be blank",
		},
		{
			name: "absent nickname",
			path: "/members/join",
			body: `{"username":"user9","password":"1234"}`,
			msg:  "nickname-NotBlank-must not be blank",
		},
		{
			name: "whitespace join fields",
			path: "/members/join",
			body: `{"username":"   ","password":"1234","nickname":"닉네임"}`,
			msg:  "username-NotBlank-must not be blank",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPost, tt.path, tt.body, key)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			rs := decodeResult(t, rec)
			assert.Equal(t, "400-1", rs.ResultCode)
			assert.Equal(t, tt.msg, rs.Msg)
		})
	}

	rec := ts.do(http.MethodGet, "/posts", "", "")
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")

	for _, body := range []string{`{`, `not json`, `{"title":"제목","content":"내용"} {}`} {
		rec := ts.do(http.MethodPost, "/posts", body, key)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "400-2", decodeResult(t, rec).ResultCode, body)
	}
}

func TestUnknownFieldsAreIgnored(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")

	rec := ts.do(http.MethodPost, "/posts", `{"title":"제목","content":"내용","extra":true}`, key)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestNotFoundHasNoBody(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")
	p := ts.writePost(key, "제목", "내용")
	c := ts.writeComment(key, p.ID, "댓글")
	other := ts.writePost(key, "제목2", "내용2")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"missing post", http.MethodGet, "/posts/999", ""},
		{"non numeric id", http.MethodGet, "/posts/abc", ""},
		{"zero id", http.MethodGet, "/posts/0", ""},
		{"comments of missing post", http.MethodGet, "/posts/999/comments", ""},
		{"comment under other post", http.MethodGet, "/posts/" + formatID(other.ID) + "/comments/" + formatID(c.ID), ""},
		{"missing comment", http.MethodGet, "/posts/" + formatID(p.ID) + "/comments/999", ""},
		{"modify missing post", http.MethodPut, "/posts/999", `{"title":"제목","content":"내용"}`},
		{"delete missing post", http.MethodDelete, "/posts/999", ""},
		{"comment on missing post", http.MethodPost, "/posts/999/comments", `{"content":"댓글"}`},
		{"unknown route", http.MethodGet, "/nowhere", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(tt.method, tt.path, tt.body, key)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestPostLifecycle(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")

	rec := ts.do(http.MethodPost, "/posts", `{"title":"제목1","content":"내용1"}`, key)
	require.Equal(t, http.StatusCreated, rec.Code)
	rs := decodeResult(t, rec)
	assert.Equal(t, "201-1", rs.ResultCode)
	assert.Equal(t, "1번 게시물이 생성되었습니다.", rs.Msg)

	rec = ts.do(http.MethodGet, "/posts/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got PostDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "제목1", got.Title)
	assert.Equal(t, "유저1", got.AuthorName)

	rec = ts.do(http.MethodPut, "/posts/1", `{"title":"새 제목","content":"새 내용"}`, key)
	require.Equal(t, http.StatusOK, rec.Code)
	rs = decodeResult(t, rec)
	assert.Equal(t, "200-1", rs.ResultCode)
	assert.Equal(t, "1번 게시물이 수정되었습니다.", rs.Msg)
	assert.Empty(t, rs.Data)

	rec = ts.do(http.MethodGet, "/posts/1", "", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "새 제목", got.Title)
	assert.Equal(t, "새 내용", got.Content)
	assert.False(t, got.ModifyDate.Before(got.CreateDate))

	rec = ts.do(http.MethodDelete, "/posts/1", "", key)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1번 게시물이 삭제되었습니다.", decodeResult(t, rec).Msg)

	rec = ts.do(http.MethodGet, "/posts/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPostsNewestFirst(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")
	for _, title := range []string{"A1", "B1", "C1"} {
		ts.writePost(key, title, "내용")
	}

	rec := ts.do(http.MethodGet, "/posts", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []PostDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, []string{"C1", "B1", "A1"}, []string{list[0].Title, list[1].Title, list[2].Title})
}

func TestCommentLifecycle(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")
	p := ts.writePost(key, "제목", "내용")
	base := "/posts/" + formatID(p.ID) + "/comments"

	rec := ts.do(http.MethodPost, base, `{"content":"댓글1"}`, key)
	require.Equal(t, http.StatusCreated, rec.Code)
	rs := decodeResult(t, rec)
	assert.Equal(t, "201-1", rs.ResultCode)
	assert.Equal(t, "1번 댓글이 생성되었습니다.", rs.Msg)
	var created CommentWriteResponse
	require.NoError(t, json.Unmarshal(rs.Data, &created))
	assert.Equal(t, p.ID, created.CommentDTO.PostID)

	ts.writeComment(key, p.ID, "댓글2")

	rec = ts.do(http.MethodGet, base, "", "")
	var list []CommentDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "댓글2", list[0].Content)
	assert.Equal(t, "댓글1", list[1].Content)

	rec = ts.do(http.MethodPut, base+"/1", `{"content":"고친 댓글"}`, key)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1번 댓글이 수정되었습니다.", decodeResult(t, rec).Msg)

	rec = ts.do(http.MethodGet, base+"/1", "", "")
	var got CommentDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "고친 댓글", got.Content)

	rec = ts.do(http.MethodDelete, base+"/1", "", key)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1번 댓글이 삭제되었습니다.", decodeResult(t, rec).Msg)

	rec = ts.do(http.MethodGet, base+"/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnership(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	owner := ts.join("user1", "유저1")
	other := ts.join("user2", "유저2")
	p := ts.writePost(owner, "제목", "내용")
	c := ts.writeComment(owner, p.ID, "댓글")
	postPath := "/posts/" + formatID(p.ID)
	commentPath := postPath + "/comments/" + formatID(c.ID)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   string
		msg    string
	}{
		{"modify post", http.MethodPut, postPath, `{"title":"탈취","content":"탈취"}`, "403-1", "수정 권한이 없습니다."},
		{"delete post", http.MethodDelete, postPath, "", "403-2", "삭제 권한이 없습니다."},
		{"modify comment", http.MethodPut, commentPath, `{"content":"탈취"}`, "403-1", "댓글 수정 권한이 없습니다."},
		{"delete comment", http.MethodDelete, commentPath, "", "403-2", "댓글 삭제 권한이 없습니다."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(tt.method, tt.path, tt.body, other)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			rs := decodeResult(t, rec)
			assert.Equal(t, tt.code, rs.ResultCode)
			assert.Equal(t, tt.msg, rs.Msg)
		})
	}

	rec := ts.do(http.MethodGet, postPath, "", "")
	var gotPost PostDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gotPost))
	assert.Equal(t, "제목", gotPost.Title)

	rec = ts.do(http.MethodGet, commentPath, "", "")
	var gotComment CommentDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gotComment))
	assert.Equal(t, "댓글", gotComment.Content)
}

func TestCommentByOtherMemberOnOwnPost(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	owner := ts.join("user1", "유저1")
	other := ts.join("user2", "유저2")
	p := ts.writePost(owner, "제목", "내용")
	c := ts.writeComment(other, p.ID, "댓글")

	// the post author does not own other members' comments
	rec := ts.do(http.MethodDelete, "/posts/"+formatID(p.ID)+"/comments/"+formatID(c.ID), "", owner)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodDelete, "/posts/"+formatID(p.ID)+"/comments/"+formatID(c.ID), "", other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeletePostCascadesToComments(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	key := ts.join("user1", "유저1")
	p := ts.writePost(key, "제목", "내용")
	c := ts.writeComment(key, p.ID, "댓글")

	rec := ts.do(http.MethodDelete, "/posts/"+formatID(p.ID), "", key)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/posts/"+formatID(p.ID)+"/comments", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(http.MethodGet, "/posts/"+formatID(p.ID)+"/comments/"+formatID(c.ID), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnglishMessages(t *testing.T) {
	ts := newTestServer(t, config.Config{Lang: "en"})
	key := ts.join("user1", "User One")

	rec := ts.do(http.MethodPost, "/posts", `{"title":"Title","content":"Content"}`, key)
	assert.Equal(t, "Post 1 has been created.", decodeResult(t, rec).Msg)

	rec = ts.do(http.MethodGet, "/members/me", "", "")
	assert.Equal(t, "The request has no authentication header.", decodeResult(t, rec).Msg)
}

func TestBasePath(t *testing.T) {
	ts := newTestServer(t, config.Config{BasePath: "/api/v1"})

	rec := ts.do(http.MethodGet, "/api/v1/posts", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/posts", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenAPIDocFollowsEachServersBasePath(t *testing.T) {
	readBasePath := func(ts *testServer) string {
		rec := ts.do(http.MethodGet, "/openapi.json", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		return fmt.Sprint(doc["basePath"])
	}

	mounted := newTestServer(t, config.Config{BasePath: "/api/v1"})
	root := newTestServer(t, config.Config{})

	assert.Equal(t, "/api/v1", readBasePath(mounted))
	assert.Equal(t, "/", readBasePath(root))
	assert.Equal(t, "/api/v1", readBasePath(mounted))
	assert.Equal(t, "/", docs.SwaggerInfo.BasePath)
}

func TestUtilityRoutes(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.join("user1", "유저1")

	rec := ts.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "board_http_requests_total")
	assert.Contains(t, body, `route="/members/join"`)
	assert.Contains(t, body, `board_api_results_total{code="201-1"} 1`)

	rec = ts.do(http.MethodGet, "/openapi.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/posts/{postID}/comments/{commentID}")
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	req := httptest.NewRequest(http.MethodOptions, "/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeaderIsAccepted(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.NewWithOutput(&buf, "info", "json")
	require.NoError(t, err)
	srv, err := NewServer(memory.New(), config.Config{Lang: "en", CORSOrigins: "*"}, log)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/posts/7", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/posts/7", entry["path"])
	assert.Contains(t, entry["route"], "{postID}")
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}
