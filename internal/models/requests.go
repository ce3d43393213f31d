package models

import "time"

// GiveawayRequest represents the payload for creating or editing a giveaway.
// The prize list always replaces the stored batch wholesale.
type GiveawayRequest struct {
	Title              string          `json:"title" binding:"required"`
	Description        string          `json:"description"`
	ImageURL           string          `json:"imageUrl"`
	ShowCreator        bool            `json:"showCreator"`
	StartAt            time.Time       `json:"startAt" binding:"required"`
	EndAt              time.Time       `json:"endAt" binding:"required"`
	MinPoints          int             `json:"minPoints"`
	RequirementType    RequirementType `json:"requirementType"`
	RequirementMessage string          `json:"requirementMessage"`
	Prizes             []PrizeRequest  `json:"prizes" binding:"required"`
}

// PrizeRequest represents one prize tier in a GiveawayRequest
type PrizeRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	WinnerCount  int    `json:"winnerCount" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

// GiveawayDetail is a giveaway with its derived display status and prizes
type GiveawayDetail struct {
	Giveaway        *Giveaway      `json:"giveaway"`
	EffectiveStatus GiveawayStatus `json:"effectiveStatus"`
	Prizes          []*Prize       `json:"prizes"`
}

// RaffleRequest represents the payload for creating a raffle calendar event
type RaffleRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"startAt" binding:"required"`
	EndAt       time.Time `json:"endAt" binding:"required"`
}

// AllocationResult reports which slots won and which lost after the creator
// resolved a raffle application
type AllocationResult struct {
	WonIDs  []string `json:"wonIds"`
	LostIDs []string `json:"lostIds"`
}
