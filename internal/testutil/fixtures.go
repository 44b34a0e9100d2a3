package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
	fullName string
	role     domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		fullName: "Test User",
		role:     domain.RoleReader,
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		FullName:     b.fullName,
		Role:         b.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndLogin creates the user directly in the database, then logs in via
// the API. It returns the user, the access token and the refresh cookie.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, string, *http.Cookie) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)
	accessToken, cookie := Login(t, ts, user.Email, password)
	return user, accessToken, cookie
}

// Login authenticates via the API and returns the access token plus the
// refresh-token cookie set by the server.
func Login(t *testing.T, ts *TestServer, email, password string) (string, *http.Cookie) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status: %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	var refreshCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "refreshToken" {
			refreshCookie = c
		}
	}

	return result.AccessToken, refreshCookie
}

// CategoryBuilder creates test categories
type CategoryBuilder struct {
	name string
}

func NewCategoryBuilder() *CategoryBuilder {
	return &CategoryBuilder{
		name: fmt.Sprintf("category_%s", uuid.New().String()[:8]),
	}
}

func (b *CategoryBuilder) WithName(name string) *CategoryBuilder {
	b.name = name
	return b
}

func (b *CategoryBuilder) Build(t *testing.T, db *gorm.DB) *domain.Category {
	t.Helper()

	category := &domain.Category{
		ID:        uuid.New(),
		Name:      b.name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	return category
}

// ArticleBuilder creates test articles
type ArticleBuilder struct {
	user     *domain.User
	category *domain.Category
	title    string
	content  string
	imageURL *string
}

func NewArticleBuilder(user *domain.User, category *domain.Category) *ArticleBuilder {
	return &ArticleBuilder{
		user:     user,
		category: category,
		title:    "Test Article",
		content:  "Test article content.",
	}
}

func (b *ArticleBuilder) WithTitle(title string) *ArticleBuilder {
	b.title = title
	return b
}

func (b *ArticleBuilder) WithImageURL(url string) *ArticleBuilder {
	b.imageURL = &url
	return b
}

func (b *ArticleBuilder) Build(t *testing.T, db *gorm.DB) *domain.Article {
	t.Helper()

	article := &domain.Article{
		ID:         uuid.New(),
		UserID:     b.user.ID,
		CategoryID: b.category.ID,
		Title:      b.title,
		Content:    b.content,
		ImageURL:   b.imageURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := db.Omit("User", "Category", "Comments").Create(article).Error; err != nil {
		t.Fatalf("failed to create article: %v", err)
	}

	return article
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// FormFile describes a file part attached to a multipart request.
type FormFile struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// CreateMultipartRequest builds a multipart/form-data request from text
// fields and an optional file part, with an auth token.
func CreateMultipartRequest(t *testing.T, method, url string, fields map[string]string, file *FormFile, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", field, err)
		}
	}

	if file != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		header.Set("Content-Type", file.ContentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(file.Data)); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to finish multipart body: %v", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// CommentBuilder creates test comments
type CommentBuilder struct {
	user    *domain.User
	article *domain.Article
	content string
}

func NewCommentBuilder(user *domain.User, article *domain.Article) *CommentBuilder {
	return &CommentBuilder{
		user:    user,
		article: article,
		content: "Test comment.",
	}
}

func (b *CommentBuilder) WithContent(content string) *CommentBuilder {
	b.content = content
	return b
}

func (b *CommentBuilder) Build(t *testing.T, db *gorm.DB) *domain.Comment {
	t.Helper()

	comment := &domain.Comment{
		ID:        uuid.New(),
		UserID:    b.user.ID,
		ArticleID: b.article.ID,
		Content:   b.content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Omit("User", "Article").Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	return comment
}
