// Command seed fills a running board server with demo members, posts and
// comments through the HTTP API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rest1/board/internal/client"
)

var members = []struct {
	username string
	nickname string
}{
	{"alice", "앨리스"},
	{"bob", "밥"},
	{"carol", "캐롤"},
	{"dave", "데이브"},
	{"erin", "에린"},
}

var posts = []struct {
	title   string
	content string
}{
	{"첫 글", "게시판이 열렸습니다. 자유롭게 글을 남겨 주세요."},
	{"공지", "글과 댓글은 작성자만 수정하고 삭제할 수 있습니다."},
	{"질문", "API 키는 어디서 확인하나요?"},
	{"점심 추천", "오늘 점심 메뉴 추천 받습니다."},
	{"Go 후기", "chi와 sqlx로 REST 서버를 만들어 봤습니다."},
	{"주말 계획", "이번 주말에는 무엇을 하시나요?"},
	{"버그 제보", "댓글이 최신순으로 정렬되는지 확인해 주세요."},
	{"Hello", "Hello from the seeder."},
}

var comments = []string{
	"좋은 글 감사합니다.",
	"저도 같은 생각입니다.",
	"로그인 응답의 apiKey를 확인하세요.",
	"동의하기 어렵네요.",
	"자세한 내용이 궁금합니다.",
	"Nice post!",
	"확인했습니다.",
	"다음 글도 기대할게요.",
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Board server URL including any API prefix")
	password := flag.String("password", "1234", "Password for the demo members")
	flag.Parse()

	log := logrus.New()
	log.Infof("Seeding board at %s", *baseURL)

	var clients []*client.Client
	for _, m := range members {
		c := client.New(*baseURL)
		if _, err := c.Join(m.username, *password, m.nickname); err != nil && !errors.Is(err, client.ErrAlreadyRegistered) {
			log.Fatalf("join %s: %v", m.username, err)
		}
		if _, err := c.Login(m.username, *password); err != nil {
			log.Fatalf("login %s: %v", m.username, err)
		}
		log.Infof("✓ Member ready: %s", m.username)
		clients = append(clients, c)
	}

	var postIDs []int64
	for _, p := range posts {
		idx := rand.Intn(len(clients))
		created, err := clients[idx].WritePost(p.title, p.content)
		if err != nil {
			log.Warnf("✗ Failed to write post: %v", err)
			continue
		}
		postIDs = append(postIDs, created.ID)
		log.Infof("✓ Post #%d: %s (by %s)", created.ID, p.title, members[idx].username)

		// spread out creation times
		time.Sleep(50 * time.Millisecond)
	}

	commentCount := 0
	for _, postID := range postIDs {
		n := rand.Intn(4) + 1
		for i := 0; i < n; i++ {
			idx := rand.Intn(len(clients))
			created, err := clients[idx].WriteComment(postID, comments[rand.Intn(len(comments))])
			if err != nil {
				log.Warnf("✗ Failed to comment: %v", err)
				continue
			}
			commentCount++
			log.Infof("✓ Comment #%d on post #%d (by %s)", created.ID, postID, members[idx].username)
		}
	}

	fmt.Println("\n=== Seed Complete ===")
	fmt.Printf("Members:  %d\n", len(members))
	fmt.Printf("Posts:    %d\n", len(postIDs))
	fmt.Printf("Comments: %d\n", commentCount)
	fmt.Println("\nView at:", *baseURL+"/posts")
}
