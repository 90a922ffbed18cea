package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// CampaignFilter selects a view of the campaign registry
type CampaignFilter string

const (
	FilterAll    CampaignFilter = "all"
	FilterMine   CampaignFilter = "my"
	FilterActive CampaignFilter = "active"
)

// ParseCampaignFilter validates a filter name; empty means all
func ParseCampaignFilter(s string) (CampaignFilter, error) {
	switch CampaignFilter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterMine, FilterActive:
		return CampaignFilter(s), nil
	}
	return "", &ValidationError{
		Field:   "filter",
		Message: fmt.Sprintf("invalid filter: %s (valid: all, my, active)", s),
	}
}

// OwnedBy returns the campaigns whose owner is the given address
func OwnedBy(campaigns []CampaignInfo, owner common.Address) []CampaignInfo {
	return lo.Filter(campaigns, func(c CampaignInfo, _ int) bool {
		return c.Owner == owner
	})
}

// NotEnded returns the campaigns not marked as ended. Campaigns missing from
// the ended map are kept.
func NotEnded(campaigns []CampaignInfo, ended map[common.Address]bool) []CampaignInfo {
	return lo.Filter(campaigns, func(c CampaignInfo, _ int) bool {
		return !ended[c.Address]
	})
}

// WithIDs returns the campaigns whose id is in ids, preserving registry order
func WithIDs(campaigns []CampaignInfo, ids []uint64) []CampaignInfo {
	set := lo.SliceToMap(ids, func(id uint64) (uint64, struct{}) { return id, struct{}{} })
	return lo.Filter(campaigns, func(c CampaignInfo, _ int) bool {
		_, ok := set[c.ID]
		return ok
	})
}
