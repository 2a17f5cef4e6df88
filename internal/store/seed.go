package store

import (
	"time"

	"activity-hub/internal/models"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

type seed struct {
	users         []*models.User
	subcategories []*models.Subcategory
	posts         []*models.Post
	comments      []*models.Comment
	notifications []*models.Notification
}

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

// seedData returns fresh fixture records. Users come back without a password
// hash; Reset fills it in.
func seedData() seed {
	return seed{
		users: []*models.User{
			{
				ID:                     1,
				Email:                  "user@example.com",
				Username:               "Moto_Traveler",
				Bio:                    "Into motorcycle tours and mountain roads. More than 50,000 km across Russia and Europe.",
				CreatedAt:              ts("2024-01-01T10:00:00Z"),
				FavoriteSubcategoryIDs: []int64{1, 3},
				Role:                   models.RoleUser,
			},
			{
				ID:                     2,
				Email:                  "diver@example.com",
				Username:               "Diver_Pro",
				Bio:                    "Professional diver with 10 years of experience. Loves exploring coral reefs.",
				CreatedAt:              ts("2024-01-02T14:30:00Z"),
				FavoriteSubcategoryIDs: []int64{2},
				Role:                   models.RoleUser,
			},
			{
				ID:                     3,
				Email:                  "cyclist@example.com",
				Username:               "Bike_Traveler",
				Bio:                    "Bike touring is my passion. Rode across Crimea, the Caucasus and the Alps.",
				CreatedAt:              ts("2024-01-03T09:15:00Z"),
				FavoriteSubcategoryIDs: []int64{1},
				Role:                   models.RoleUser,
			},
			{
				ID:                     4,
				Email:                  "moderator@example.com",
				Username:               "Moderator",
				Bio:                    "Reviews new subcategories.",
				CreatedAt:              ts("2024-01-01T09:00:00Z"),
				FavoriteSubcategoryIDs: []int64{},
				Role:                   models.RoleModerator,
			},
			{
				ID:                     5,
				Email:                  "admin@example.com",
				Username:               "Admin",
				CreatedAt:              ts("2024-01-01T08:00:00Z"),
				FavoriteSubcategoryIDs: []int64{},
				Role:                   models.RoleAdmin,
			},
		},
		subcategories: []*models.Subcategory{
			{
				ID: 1, Name: "Moto tours", Description: "Travelling by motorcycle",
				MainCategoryID: 1, CreatedByUserID: 1, IsApproved: true, Moderators: []int64{1},
				Tags:      []string{"moto", "travel", "mountains", "roads"},
				CreatedAt: ts("2024-01-01T10:00:00Z"),
			},
			{
				ID: 2, Name: "Diving", Description: "Underwater swimming",
				MainCategoryID: 2, CreatedByUserID: 2, IsApproved: true, Moderators: []int64{2},
				Tags:      []string{"diving", "underwater", "corals", "sharks"},
				CreatedAt: ts("2024-01-02T14:30:00Z"),
			},
			{
				ID: 3, Name: "Road trips", Description: "Travelling by car",
				MainCategoryID: 1, CreatedByUserID: 1, IsApproved: true, Moderators: []int64{1},
				Tags:      []string{"car", "travel", "camping"},
				CreatedAt: ts("2024-01-03T09:15:00Z"),
			},
			{
				ID: 4, Name: "Surfing", Description: "Riding the waves",
				MainCategoryID: 2, CreatedByUserID: 2, IsApproved: false, Moderators: []int64{},
				Tags:      []string{"surfing", "ocean", "waves"},
				CreatedAt: ts("2024-01-04T16:45:00Z"),
			},
			{
				ID: 5, Name: "Paragliding", Description: "Flying paragliders",
				MainCategoryID: 3, CreatedByUserID: 1, IsApproved: true, Moderators: []int64{1},
				Tags:      []string{"paraglider", "flying", "sky"},
				CreatedAt: ts("2024-01-05T11:20:00Z"),
			},
			{
				ID: 6, Name: "Mountaineering", Description: "Climbing mountains",
				MainCategoryID: 4, CreatedByUserID: 2, IsApproved: true, Moderators: []int64{2},
				Tags:      []string{"mountaineering", "mountains", "ascents"},
				CreatedAt: ts("2024-01-06T13:45:00Z"),
			},
			{
				ID: 7, Name: "Music festivals", Description: "Going to music events",
				MainCategoryID: 6, CreatedByUserID: 3, IsApproved: true, Moderators: []int64{3},
				Tags:      []string{"music", "festivals", "concerts"},
				CreatedAt: ts("2024-01-07T15:30:00Z"),
			},
		},
		posts: []*models.Post{
			{
				ID:            1,
				Title:         "An unforgettable moto tour through the Caucasus: 7 days of pure adrenaline",
				Content:       "The most incredible trip of my life! A week-long tour with friends through the most scenic places of the Caucasus...",
				AuthorID:      1,
				SubcategoryID: 1,
				Tags:          []string{"moto", "mountains", "caucasus", "trip", "adrenaline"},
				Media: models.Media{
					Photos: []string{
						"https://images.unsplash.com/photo-1558980664-1db506751c6c?w=800&auto=format&fit=crop",
						"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=800&auto=format&fit=crop",
					},
					Route: &models.Route{
						Points: []models.LatLng{
							{Lat: 43.0406, Lng: 44.6778},
							{Lat: 42.661, Lng: 44.642},
						},
						Distance: ptr(350.0),
						Duration: ptr(420.0),
					},
				},
				Location:      &models.Location{Lat: 43.0406, Lng: 44.6778, Name: "Vladikavkaz, Russia"},
				LikesCount:    245,
				CommentsCount: 42,
				CreatedAt:     ts("2024-01-15T10:30:00Z"),
				UpdatedAt:     ts("2024-01-15T10:30:00Z"),
			},
			{
				ID:            2,
				Title:         "First dive in the Maldives",
				Content:       "Amazing first dive! Crystal clear water, colourful corals and thousands of fish...",
				AuthorID:      2,
				SubcategoryID: 2,
				Tags:          []string{"diving", "maldives", "first time", "corals"},
				Media: models.Media{
					Photos: []string{"https://images.unsplash.com/photo-1506929562872-bb421503ef21?w=800&auto=format&fit=crop"},
				},
				Location:      &models.Location{Lat: 4.1755, Lng: 73.5093, Name: "Maldives"},
				LikesCount:    189,
				CommentsCount: 31,
				CreatedAt:     ts("2024-01-14T14:20:00Z"),
				UpdatedAt:     ts("2024-01-14T14:20:00Z"),
			},
			{
				ID:            3,
				Title:         "Cycling across Crimea: 300 km in 5 days",
				Content:       "We rode from Sevastopol to Kerch along the coast. A hard route with climbs and descents but stunning views of the sea and the mountains. Camped on the beach. Unforgettable!",
				AuthorID:      3,
				SubcategoryID: 1,
				Tags:          []string{"bike", "crimea", "hike", "tent"},
				Media: models.Media{
					Photos: []string{"https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=800&auto=format&fit=crop"},
				},
				Location:      &models.Location{Lat: 44.9521, Lng: 34.1024, Name: "Crimea"},
				LikesCount:    203,
				CommentsCount: 31,
				CreatedAt:     ts("2024-01-08T11:45:00Z"),
				UpdatedAt:     ts("2024-01-08T11:45:00Z"),
			},
			{
				ID:            4,
				Title:         "Moto tour of the Caucasus: unforgettable impressions",
				Content:       "Spent a week riding motorcycles in the Caucasus mountains. The route covered the most scenic roads with panoramic views. Perfect weather, tough but passable roads. Recommended to anyone who loves adrenaline and beautiful landscapes!",
				AuthorID:      1,
				SubcategoryID: 1,
				Tags:          []string{"moto", "mountains", "caucasus", "trip", "adrenaline"},
				Media: models.Media{
					Photos: []string{"https://images.unsplash.com/photo-1558980664-1db506751c6c?w=800&auto=format&fit=crop"},
				},
				Location:      &models.Location{Lat: 43.0406, Lng: 44.6778, Name: "Caucasus mountains"},
				LikesCount:    156,
				CommentsCount: 24,
				CreatedAt:     ts("2024-01-10T08:15:00Z"),
				UpdatedAt:     ts("2024-01-10T08:15:00Z"),
			},
		},
		comments: []*models.Comment{
			{
				ID:         1,
				Content:    "Great route! Planning to go this year myself. How long did the climb to Kazbek take?",
				AuthorID:   2,
				PostID:     1,
				LikesCount: 12,
				CreatedAt:  ts("2024-01-15T11:45:00Z"),
			},
			{
				ID:         2,
				Content:    "About 4 hours with photo stops. The road is rough in places but any motorcycle can make it.",
				AuthorID:   1,
				PostID:     1,
				ParentID:   ptr[int64](1),
				LikesCount: 5,
				CreatedAt:  ts("2024-01-15T12:30:00Z"),
			},
			{
				ID:         3,
				Content:    "Beautiful photos! Loved the view from the pass. What was the weather like?",
				AuthorID:   2,
				PostID:     1,
				LikesCount: 8,
				CreatedAt:  ts("2024-01-15T13:20:00Z"),
			},
		},
		notifications: []*models.Notification{
			{
				ID:             1,
				Type:           models.NotificationLike,
				UserID:         1,
				SourceUserID:   2,
				SourceUserName: "Diver_Pro",
				PostID:         ptr[int64](1),
				Message:        "liked your post about the Caucasus moto tour",
				CreatedAt:      ts("2024-01-15T11:00:00Z"),
			},
			{
				ID:             2,
				Type:           models.NotificationComment,
				UserID:         1,
				SourceUserID:   2,
				SourceUserName: "Diver_Pro",
				PostID:         ptr[int64](1),
				CommentID:      ptr[int64](1),
				Message:        "commented on your post",
				IsRead:         true,
				CreatedAt:      ts("2024-01-15T11:45:00Z"),
			},
			{
				ID:             3,
				Type:           models.NotificationFollow,
				UserID:         1,
				SourceUserID:   2,
				SourceUserName: "Diver_Pro",
				Message:        "started following you",
				CreatedAt:      ts("2024-01-14T09:30:00Z"),
			},
		},
	}
}
