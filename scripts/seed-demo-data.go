package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

const apiBase = "http://localhost:8080/api/v1"

type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Token    string `json:"token"`
	UserID   string `json:"userId"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Article struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type RegisterResponse struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
}

func registerUser(username, password string) (*User, error) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
		"fullName": "Demo " + username,
	})

	resp, err := http.Post(apiBase+"/auth/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("registration failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &User{
		Username: result.User.Username,
		Password: password,
		Token:    result.AccessToken,
		UserID:   result.User.ID,
	}, nil
}

func login(email, password string) (*User, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := http.Post(apiBase+"/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("login failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &User{
		Username: result.User.Username,
		Password: password,
		Token:    result.AccessToken,
		UserID:   result.User.ID,
	}, nil
}

func promoteToWriter(adminToken, userID string) error {
	body, _ := json.Marshal(map[string]string{"newRole": "writer"})

	req, _ := http.NewRequest("PUT", apiBase+"/users/role/"+userID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("promote failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

func createCategory(adminToken, name string) (*Category, error) {
	body, _ := json.Marshal(map[string]string{"name": name})

	req, _ := http.NewRequest("POST", apiBase+"/categories/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 means the category survived a previous run; fetch is not worth the
	// trouble for a seed script, so treat it as fatal and ask for a clean DB.
	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create category failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result Category
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &result, nil
}

func createArticle(token, title, content, categoryID string) (*Article, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("title", title)
	writer.WriteField("content", content)
	writer.WriteField("categoryId", categoryID)
	writer.Close()

	req, _ := http.NewRequest("POST", apiBase+"/articles/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create article failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result Article
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &result, nil
}

func createComment(token, articleID, content string) error {
	body, _ := json.Marshal(map[string]string{"content": content})

	req, _ := http.NewRequest("POST", apiBase+"/comments/article/"+articleID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("create comment failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

func generateUsername(index int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	random := make([]byte, 4)
	for i := range random {
		random[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("demo_%d_%d_%s", index, time.Now().Unix(), string(random))
}

func main() {
	rand.Seed(time.Now().UnixNano())

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		fmt.Fprintln(os.Stderr, "SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	fmt.Println("Seeding demo data...")

	admin, err := login(adminEmail, adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Admin login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Logged in as admin %s\n", admin.Username)

	password := "demopassword123"

	// Register two writers and three readers
	fmt.Println("\nRegistering users...")
	var writers, readers []*User
	for i := 1; i <= 2; i++ {
		user, err := registerUser(generateUsername(i), password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register writer %d: %v\n", i, err)
			os.Exit(1)
		}
		if err := promoteToWriter(admin.Token, user.UserID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to promote writer %d: %v\n", i, err)
			os.Exit(1)
		}
		writers = append(writers, user)
		fmt.Printf("  ✓ Writer: %s\n", user.Username)
	}
	for i := 3; i <= 5; i++ {
		user, err := registerUser(generateUsername(i), password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register reader %d: %v\n", i, err)
			os.Exit(1)
		}
		readers = append(readers, user)
		fmt.Printf("  ✓ Reader: %s\n", user.Username)
	}

	// Categories
	fmt.Println("\nCreating categories...")
	categoryNames := []string{"technology", "science", "culture"}
	var categories []*Category
	for _, name := range categoryNames {
		category, err := createCategory(admin.Token, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create category %s: %v\n", name, err)
			os.Exit(1)
		}
		categories = append(categories, category)
		fmt.Printf("  ✓ Category: %s\n", category.Name)
	}

	// Each writer posts one article per category
	fmt.Println("\nCreating articles...")
	var articles []*Article
	for _, writer := range writers {
		for _, category := range categories {
			title := fmt.Sprintf("%s on %s", writer.Username, category.Name)
			article, err := createArticle(writer.Token, title,
				"Lorem ipsum dolor sit amet, consectetur adipiscing elit.", category.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create article: %v\n", err)
				os.Exit(1)
			}
			articles = append(articles, article)
			fmt.Printf("  ✓ Article: %s\n", article.Title)
		}
	}

	// Readers comment on the first few articles
	fmt.Println("\nCreating comments...")
	for i, reader := range readers {
		article := articles[i%len(articles)]
		if err := createComment(reader.Token, article.ID, "Great read, thanks for posting!"); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create comment: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  ✓ Comment by %s on %q\n", reader.Username, article.Title)
	}

	fmt.Println("\n" + "============================================================")
	fmt.Println("DEMO DATA SEEDED")
	fmt.Println("============================================================")
	fmt.Printf("\n  Writers:  %d\n  Readers:  %d\n  Categories: %d\n  Articles: %d\n",
		len(writers), len(readers), len(categories), len(articles))
	fmt.Printf("\n  Shared password for demo accounts: %s\n", password)
}
