package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	ShouldClean bool
	DryRun      bool
	SkipBcrypt  bool
	// MaxDays bounds how far back post timestamps are spread.
	MaxDays int
}

// Seed populates the database with demo data: users, groups, posts with a
// realistic timestamp spread, comments, and a follow mesh.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d groups, %d posts...",
		opts.NumUsers, opts.NumGroups, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean && !opts.DryRun {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups; i++ {
		group, err := f.CreateGroup()
		if err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		groups = append(groups, group)
	}
	log.Printf("✓ %d groups created", len(groups))

	posts, err := createPosts(f, r, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createComments(f, r, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	if err := createFollowMesh(f, r, users); err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, follows, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a well-known login for manual poking around
	if count >= 1 {
		user, err := f.CreateUser(func(u *models.User) {
			u.Username = "test"
			u.Email = "test@example.com"
		})
		if err == nil {
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(f *Factory, r *rand.Rand, users []*models.User, groups []*models.Group, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post := f.BuildPost(author, func(p *models.Post) {
			// Most posts belong to a group, some float free
			if len(groups) > 0 && r.Float32() < 0.7 {
				groupID := groups[r.Intn(len(groups))].ID
				p.GroupID = &groupID
			}
		})
		posts = append(posts, post)
	}

	// Insert in chunks so one bad row does not abort everything at scale
	const chunk = 500
	for start := 0; start < len(posts); start += chunk {
		end := start + chunk
		if end > len(posts) {
			end = len(posts)
		}
		if err := f.CreatePostsBatch(posts[start:end]); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

func createComments(f *Factory, r *rand.Rand, users []*models.User, posts []*models.Post) error {
	if len(users) == 0 {
		return nil
	}

	total := 0
	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			author := users[r.Intn(len(users))]
			if _, err := f.CreateComment(author, post); err != nil {
				return err
			}
			total++
		}
	}
	log.Printf("✓ %d comments created", total)
	return nil
}

func createFollowMesh(f *Factory, r *rand.Rand, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}

	total := 0
	for _, user := range users {
		// Everyone follows a handful of random authors
		for i := 0; i < 1+r.Intn(4); i++ {
			author := users[r.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			if err := f.CreateFollow(user, author); err != nil {
				return err
			}
			total++
		}
	}
	log.Printf("✓ %d follow edges created", total)
	return nil
}
