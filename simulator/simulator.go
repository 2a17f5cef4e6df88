package simulator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"activity-hub/internal/client"

	"go.uber.org/zap"
)

const simulatedPassword = "testpass123"

type SimConfig struct {
	NumUsers       int
	SimulationTime time.Duration
	// Frequencies are actions per user per hour.
	PostFrequency     float64
	CommentFrequency  float64
	LikeFrequency     float64
	BookmarkFrequency float64
	FollowFrequency   float64
	// ReplyRate is the share of comments that answer an existing comment.
	ReplyRate float64
	// NotificationCheckRate is the chance per tick that a user reads their
	// notifications.
	NotificationCheckRate float64
	ZipfS                 float64
	TickInterval          time.Duration
	NumWorkers            int
	EngineURL             string
	// Seed fixes the random source; 0 uses the current time.
	Seed int64
}

func DefaultSimConfig() SimConfig {
	return SimConfig{
		NumUsers:              10,
		SimulationTime:        time.Minute,
		PostFrequency:         60,
		CommentFrequency:      120,
		LikeFrequency:         240,
		BookmarkFrequency:     30,
		FollowFrequency:       20,
		ReplyRate:             0.3,
		NotificationCheckRate: 0.05,
		ZipfS:                 1.07,
		TickInterval:          500 * time.Millisecond,
		NumWorkers:            5,
		EngineURL:             "http://localhost:8080",
	}
}

type SimulationStats struct {
	mu                sync.RWMutex
	StartTime         time.Time
	TotalRequests     int64
	SuccessRequests   int64
	FailedRequests    int64
	AverageLatency    time.Duration
	TotalPosts        int
	TotalComments     int
	TotalReplies      int
	TotalLikes        int
	TotalBookmarks    int
	TotalFollows      int
	NotificationsRead int
}

// SimulatedUser is one registered account with its own authenticated client.
type SimulatedUser struct {
	ID         int64
	Username   string
	Email      string
	Client     *client.Client
	Posts      []int64
	Liked      map[int64]bool
	Bookmarked map[int64]bool
	Following  map[int64]bool
}

type Simulator struct {
	config SimConfig
	stats  *SimulationStats
	logger *zap.SugaredLogger
	http   *http.Client

	mu            sync.RWMutex
	users         []*SimulatedUser
	subcategories []int64
	// posts is ordered oldest first, so the Zipf head lands on the
	// established posts.
	posts []int64

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewSimulator(config SimConfig, logger *zap.SugaredLogger) *Simulator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = 1
	}
	if config.TickInterval <= 0 {
		config.TickInterval = 500 * time.Millisecond
	}
	if config.ZipfS <= 1 {
		config.ZipfS = 1.07
	}
	return &Simulator{
		config: config,
		stats:  &SimulationStats{StartTime: time.Now()},
		logger: logger,
		http:   &http.Client{Timeout: 10 * time.Second},
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Run registers the simulated users and drives their activity until ctx is
// done.
func (s *Simulator) Run(ctx context.Context) error {
	s.logger.Infof("Starting simulation with %d users against %s", s.config.NumUsers, s.config.EngineURL)

	if err := s.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.SimulateActivities(ctx)
	}()
	go func() {
		defer wg.Done()
		s.collectMetrics(ctx)
	}()
	wg.Wait()
	return nil
}

func (s *Simulator) initialize(ctx context.Context) error {
	s.logger.Infof("Phase 1: Creating %d users...", s.config.NumUsers)
	s.createInitialUsers(ctx)
	if len(s.users) == 0 {
		return fmt.Errorf("no user could be registered")
	}

	s.logger.Infof("Phase 2: Loading subcategories and posts...")
	if err := s.loadCatalog(ctx); err != nil {
		return err
	}
	if len(s.subcategories) == 0 {
		return fmt.Errorf("no approved subcategories to post in")
	}

	s.logger.Infof("Initialization completed: %d users, %d subcategories, %d posts",
		len(s.users), len(s.subcategories), len(s.posts))
	return nil
}

func (s *Simulator) newClient() *client.Client {
	c := client.New(s.config.EngineURL, s.http)
	c.OnRequest = s.recordRequestMetrics
	return c
}

func (s *Simulator) createInitialUsers(ctx context.Context) {
	jobs := make(chan int)
	results := make(chan *SimulatedUser)
	runID := time.Now().UnixNano()

	var wg sync.WaitGroup
	for i := 0; i < s.config.NumWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for n := range jobs {
				user := &SimulatedUser{
					Username:   fmt.Sprintf("user_%d", n),
					Email:      fmt.Sprintf("user_%d_%d@sim.example.com", n, runID),
					Client:     s.newClient(),
					Liked:      make(map[int64]bool),
					Bookmarked: make(map[int64]bool),
					Following:  make(map[int64]bool),
				}

				var err error
				for retries := 0; retries < 3; retries++ {
					if err = s.register(ctx, user); err == nil {
						results <- user
						break
					}
					if ctx.Err() != nil || client.StatusOf(err) == http.StatusBadRequest {
						break
					}
					backoff := time.Duration(math.Pow(2, float64(retries))) * 100 * time.Millisecond
					s.logger.Debugf("Worker %d: retry %d for user %s after %v", workerID, retries+1, user.Username, backoff)
					time.Sleep(backoff)
				}
				if err != nil {
					s.logger.Warnf("Worker %d: failed to register user %s: %v", workerID, user.Username, err)
				}
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for i := 0; i < s.config.NumUsers; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	for user := range results {
		s.mu.Lock()
		s.users = append(s.users, user)
		s.mu.Unlock()
	}
	s.logger.Infof("Successfully created %d users", len(s.users))
}

func (s *Simulator) register(ctx context.Context, user *SimulatedUser) error {
	resp, err := user.Client.Register(ctx, user.Email, simulatedPassword, user.Username)
	if err != nil {
		return err
	}
	user.ID = resp.User.ID
	return nil
}

// loadCatalog fetches the approved subcategories and the existing posts.
func (s *Simulator) loadCatalog(ctx context.Context) error {
	c := s.users[0].Client

	subcategories, err := c.Subcategories(ctx, 0, false)
	if err != nil {
		return fmt.Errorf("failed to load subcategories: %w", err)
	}
	page, err := c.ListPosts(ctx, client.PostQuery{Limit: 1000})
	if err != nil {
		return fmt.Errorf("failed to load posts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range subcategories {
		s.subcategories = append(s.subcategories, sc.ID)
	}
	// The listing is newest first.
	for i := len(page.Posts) - 1; i >= 0; i-- {
		s.posts = append(s.posts, page.Posts[i].ID)
	}
	return nil
}

func (s *Simulator) recordRequestMetrics(method, path string, latency time.Duration, err error) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	s.stats.TotalRequests++
	if err != nil {
		s.stats.FailedRequests++
		s.logger.Debugf("Request %s %s failed: %v", method, path, err)
	} else {
		s.stats.SuccessRequests++
	}

	totalLatency := s.stats.AverageLatency * time.Duration(s.stats.TotalRequests-1)
	s.stats.AverageLatency = (totalLatency + latency) / time.Duration(s.stats.TotalRequests)
}

func (s *Simulator) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m := s.GetMetrics()
			s.logger.Infof("Simulation metrics: %.1f req/sec, %d failed, avg latency %v, %d posts, %d comments, %d likes",
				m.RequestsPerSecond, m.FailedRequests, m.AverageLatency, m.TotalPosts, m.TotalComments, m.TotalLikes)
		}
	}
}

// SimulationMetrics holds the metrics of the simulation
type SimulationMetrics struct {
	TotalUsers        int
	TotalPosts        int
	TotalComments     int
	TotalReplies      int
	TotalLikes        int
	TotalBookmarks    int
	TotalFollows      int
	NotificationsRead int
	TotalRequests     int64
	FailedRequests    int64
	AverageLatency    time.Duration
	RequestsPerSecond float64
}

// GetMetrics returns the current simulation metrics
func (s *Simulator) GetMetrics() SimulationMetrics {
	s.mu.RLock()
	users := len(s.users)
	s.mu.RUnlock()

	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	elapsed := time.Since(s.stats.StartTime)
	return SimulationMetrics{
		TotalUsers:        users,
		TotalPosts:        s.stats.TotalPosts,
		TotalComments:     s.stats.TotalComments,
		TotalReplies:      s.stats.TotalReplies,
		TotalLikes:        s.stats.TotalLikes,
		TotalBookmarks:    s.stats.TotalBookmarks,
		TotalFollows:      s.stats.TotalFollows,
		NotificationsRead: s.stats.NotificationsRead,
		TotalRequests:     s.stats.TotalRequests,
		FailedRequests:    s.stats.FailedRequests,
		AverageLatency:    s.stats.AverageLatency,
		RequestsPerSecond: float64(s.stats.TotalRequests) / elapsed.Seconds(),
	}
}
