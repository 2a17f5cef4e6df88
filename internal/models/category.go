package models

import "time"

// MainCategory is one of the six fixed top-level categories.
type MainCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	IconKey     string `json:"iconKey"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// MainCategories never changes for the lifetime of the process.
var MainCategories = []MainCategory{
	{ID: 1, Name: "Ground travel", IconKey: "ground-travel", Description: "Cars, motorcycles, bikes, hiking", Color: "#a16207"},
	{ID: 2, Name: "Water activities", IconKey: "water-activities", Description: "Diving, surfing, sailing", Color: "#0ea5e9"},
	{ID: 3, Name: "Air travel", IconKey: "air-travel", Description: "Paragliding, aviation", Color: "#8b5cf6"},
	{ID: 4, Name: "Active leisure", IconKey: "active-leisure", Description: "Trekking, sports, fitness", Color: "#10b981"},
	{ID: 5, Name: "Extreme", IconKey: "extreme", Description: "Extreme sports", Color: "#ef4444"},
	{ID: 6, Name: "Music and creativity", IconKey: "music-creative", Description: "Music, art, DIY", Color: "#ec4899"},
}

// FindMainCategory looks up a main category by id.
func FindMainCategory(id int64) (MainCategory, bool) {
	for _, c := range MainCategories {
		if c.ID == id {
			return c, true
		}
	}
	return MainCategory{}, false
}

// Subcategory is a user-submitted category under a main category. Posts may
// only reference approved subcategories.
type Subcategory struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	MainCategoryID  int64     `json:"mainCategoryId"`
	CreatedByUserID int64     `json:"createdByUserId"`
	IsApproved      bool      `json:"isApproved"`
	Moderators      []int64   `json:"moderators"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (s *Subcategory) HasModerator(userID int64) bool {
	for _, id := range s.Moderators {
		if id == userID {
			return true
		}
	}
	return false
}

type CategoryTreeNode struct {
	MainCategory  MainCategory   `json:"mainCategory"`
	Subcategories []*Subcategory `json:"subcategories"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

func (s *Subcategory) Clone() *Subcategory {
	cp := *s
	cp.Moderators = append([]int64{}, s.Moderators...)
	cp.Tags = append([]string{}, s.Tags...)
	return &cp
}

func CloneSubcategories(subs []*Subcategory) []*Subcategory {
	out := make([]*Subcategory, len(subs))
	for i, s := range subs {
		out[i] = s.Clone()
	}
	return out
}
