package comments

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/isntboxs/docsofboxs-api/testutils"
	"github.com/isntboxs/docsofboxs-api/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func commentsRouter(userID, role string) *gin.Engine {
	r := testutils.SetupTestRouter()
	authed := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Set("role", role)
			handler(c)
		}
	}
	r.POST("/comments/blog/:blogId", authed(CreateComment))
	r.POST("/comments/:commentId/reply", authed(CreateReply))
	r.DELETE("/comments/:commentId", authed(DeleteComment))
	return r
}

func formRequest(method, target, content string) *http.Request {
	form := url.Values{}
	form.Set("content", content)
	req, _ := http.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestGetCommentsByBlog_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	blogID := uuid.NewString()
	authorID := uuid.NewString()
	rootID := uuid.NewString()
	replyID := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "blogs" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(blogID))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "comments" WHERE (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE blog_id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_id", "blog_id", "depth"}).
			AddRow(rootID, "Nice article", authorID, blogID, 0))

	// preloads: root authors, then the replies and their authors
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(authorID, "Test User"))
	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_id", "blog_id", "parent_id", "depth"}).
			AddRow(replyID, "I agree", authorID, blogID, rootID, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(authorID, "Test User"))

	r := commentsRouter(authorID, "user")
	r.GET("/comments/blog/:blogId", GetCommentsByBlog)

	req, _ := http.NewRequest(http.MethodGet, "/comments/blog/"+blogID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody utils.Response
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &respBody))
	assert.True(t, respBody.Success)

	comments, ok := respBody.Data.([]interface{})
	assert.True(t, ok)
	assert.Len(t, comments, 1)

	root, ok := comments[0].(map[string]interface{})
	assert.True(t, ok)
	replies, ok := root["replies"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, replies, 1)

	assert.NotNil(t, respBody.Pagination)
	assert.Equal(t, int64(1), respBody.Pagination.TotalCount)
}

func TestGetCommentsByBlog_BlogNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "blogs" WHERE id = (.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := commentsRouter(uuid.NewString(), "user")
	r.GET("/comments/blog/:blogId", GetCommentsByBlog)

	req, _ := http.NewRequest(http.MethodGet, "/comments/blog/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetReplies_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	blogID := uuid.NewString()
	authorID := uuid.NewString()
	parentID := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "blog_id", "depth"}).
			AddRow(parentID, blogID, 0))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "comments" WHERE parent_id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE parent_id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_id", "blog_id", "parent_id", "depth"}).
			AddRow(uuid.NewString(), "first", authorID, blogID, parentID, 1).
			AddRow(uuid.NewString(), "second", authorID, blogID, parentID, 1))

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(authorID, "Test User"))

	r := commentsRouter(authorID, "user")
	r.GET("/comments/:commentId/replies", GetReplies)

	req, _ := http.NewRequest(http.MethodGet, "/comments/"+parentID+"/replies", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody utils.Response
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &respBody))

	replies, ok := respBody.Data.([]interface{})
	assert.True(t, ok)
	assert.Len(t, replies, 2)
	assert.Equal(t, int64(2), respBody.Pagination.TotalCount)
}

func TestGetReplies_ParentNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := commentsRouter(uuid.NewString(), "user")
	r.GET("/comments/:commentId/replies", GetReplies)

	req, _ := http.NewRequest(http.MethodGet, "/comments/"+uuid.NewString()+"/replies", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateComment_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	blogID := uuid.NewString()
	userID := uuid.NewString()
	commentID := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "blogs" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "comments_count"}).AddRow(blogID, 0))

	// comment insert and counter bump share one transaction
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments" (.+) RETURNING (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(commentID))
	mock.ExpectExec(`UPDATE "blogs" SET (.+)`).
		WithArgs(1, blogID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_id", "blog_id", "depth"}).
			AddRow(commentID, "Nice article", userID, blogID, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(userID, "Test User"))

	r := commentsRouter(userID, "user")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, formRequest(http.MethodPost, "/comments/blog/"+blogID, "Nice article"))

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody utils.Response
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &respBody))
	assert.True(t, respBody.Success)

	data, ok := respBody.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(0), data["depth"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateComment_BlogNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "blogs" WHERE id = (.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := commentsRouter(uuid.NewString(), "user")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, formRequest(http.MethodPost, "/comments/blog/"+uuid.NewString(), "Nice article"))

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateComment_ContentRequired(t *testing.T) {
	r := commentsRouter(uuid.NewString(), "user")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, formRequest(http.MethodPost, "/comments/blog/"+uuid.NewString(), ""))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateComment_CounterBumpFailureRollsBack(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	blogID := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "blogs" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "comments_count"}).AddRow(blogID, 0))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments" (.+) RETURNING (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectExec(`UPDATE "blogs" SET (.+)`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	r := commentsRouter(uuid.NewString(), "user")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, formRequest(http.MethodPost, "/comments/blog/"+blogID, "Nice article"))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReply_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	blogID := uuid.NewString()
	userID := uuid.NewString()
	parentID := uuid.NewString()
	replyID := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "blog_id", "depth"}).AddRow(parentID, blogID, 2))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments" (.+) RETURNING (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(replyID))
	mock.ExpectExec(`UPDATE "blogs" SET (.+)`).
		WithArgs(1, blogID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_id", "blog_id", "parent_id", "depth"}).
			AddRow(replyID, "I agree", userID, blogID, parentID, 3))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(userID, "Test User"))

	r := commentsRouter(userID, "user")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, formRequest(http.MethodPost, "/comments/"+parentID+"/reply", "I agree"))

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody utils.Response
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &respBody))

	data, ok := respBody.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(3), data["depth"])
	assert.Equal(t, parentID, data["parentId"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReply_DepthExceeded(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	parentID := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "blog_id", "depth"}).
			AddRow(parentID, uuid.NewString(), 5))

	r := commentsRouter(uuid.NewString(), "user")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, formRequest(http.MethodPost, "/comments/"+parentID+"/reply", "too deep"))

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody utils.Response
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &respBody))
	assert.Contains(t, respBody.Error.Message, "nested more than 5 levels")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReply_ParentNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := commentsRouter(uuid.NewString(), "user")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, formRequest(http.MethodPost, "/comments/"+uuid.NewString()+"/reply", "hello"))

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteComment_WithSubtree(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	blogID := uuid.NewString()
	userID := uuid.NewString()
	commentID := uuid.NewString()
	childOne := uuid.NewString()
	childTwo := uuid.NewString()
	grandChild := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "blog_id", "depth"}).
			AddRow(commentID, userID, blogID, 0))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE parent_id IN (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(childOne).AddRow(childTwo))
	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE parent_id IN (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(grandChild))
	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE parent_id IN (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`DELETE FROM "comments" WHERE (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	// decrement matches the number of rows actually removed, grandchildren included
	mock.ExpectExec(`UPDATE "blogs" SET (.+)`).
		WithArgs(4, blogID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := commentsRouter(userID, "user")

	req, _ := http.NewRequest(http.MethodDelete, "/comments/"+commentID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteComment_LeafDecrementsByOne(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	blogID := uuid.NewString()
	userID := uuid.NewString()
	commentID := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "blog_id", "depth"}).
			AddRow(commentID, userID, blogID, 1))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE parent_id IN (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`DELETE FROM "comments" WHERE (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "blogs" SET (.+)`).
		WithArgs(1, blogID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := commentsRouter(userID, "user")

	req, _ := http.NewRequest(http.MethodDelete, "/comments/"+commentID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteComment_ForbiddenForOtherUser(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	commentID := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "blog_id", "depth"}).
			AddRow(commentID, uuid.NewString(), uuid.NewString(), 0))

	r := commentsRouter(uuid.NewString(), "user")

	req, _ := http.NewRequest(http.MethodDelete, "/comments/"+commentID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)

	var respBody utils.Response
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &respBody))
	assert.Equal(t, "FORBIDDEN", respBody.Error.Code)
}

func TestDeleteComment_AdminMayDeleteAny(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	blogID := uuid.NewString()
	commentID := uuid.NewString()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "blog_id", "depth"}).
			AddRow(commentID, uuid.NewString(), blogID, 0))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE parent_id IN (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`DELETE FROM "comments" WHERE (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "blogs" SET (.+)`).
		WithArgs(1, blogID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := commentsRouter(uuid.NewString(), "admin")

	req, _ := http.NewRequest(http.MethodDelete, "/comments/"+commentID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteComment_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE id = (.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := commentsRouter(uuid.NewString(), "user")

	req, _ := http.NewRequest(http.MethodDelete, "/comments/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
