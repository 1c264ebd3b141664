// Copyright (c) 2024-2025. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package amendment

import "fmt"

// Rules provides a read-only view of which features are enabled while
// transactions are applied.
type Rules struct {
	enabled map[[32]byte]bool
}

// NewRules creates a new Rules instance with the given enabled features.
func NewRules(enabledIDs [][32]byte) *Rules {
	r := &Rules{
		enabled: make(map[[32]byte]bool, len(enabledIDs)),
	}
	for _, id := range enabledIDs {
		r.enabled[id] = true
	}
	return r
}

// Enabled returns true if the feature with the given ID is enabled.
func (r *Rules) Enabled(featureID [32]byte) bool {
	return r.enabled[featureID]
}

// EnabledCount returns the number of enabled features.
func (r *Rules) EnabledCount() int {
	return len(r.enabled)
}

// DefaultRules enables every supported default-yes feature.
func DefaultRules() *Rules {
	enabledIDs := make([][32]byte, 0)
	for _, f := range AllFeatures() {
		if f.Vote == VoteDefaultYes && f.Supported == SupportedYes {
			enabledIDs = append(enabledIDs, f.ID)
		}
	}
	return NewRules(enabledIDs)
}

// EmptyRules returns Rules with no features enabled.
func EmptyRules() *Rules {
	return NewRules(nil)
}

// AllSupportedRules returns Rules with all supported features enabled.
func AllSupportedRules() *Rules {
	enabledIDs := make([][32]byte, 0)
	for _, f := range AllFeatures() {
		if f.Supported == SupportedYes {
			enabledIDs = append(enabledIDs, f.ID)
		}
	}
	return NewRules(enabledIDs)
}

// RulesBuilder allows building custom Rules instances.
type RulesBuilder struct {
	enabled map[[32]byte]bool
}

// NewRulesBuilder creates a builder seeded with the default rules.
func NewRulesBuilder() *RulesBuilder {
	b := &RulesBuilder{enabled: make(map[[32]byte]bool)}
	for id := range DefaultRules().enabled {
		b.enabled[id] = true
	}
	return b
}

func (b *RulesBuilder) Enable(featureID [32]byte) *RulesBuilder {
	b.enabled[featureID] = true
	return b
}

func (b *RulesBuilder) Disable(featureID [32]byte) *RulesBuilder {
	delete(b.enabled, featureID)
	return b
}

// EnableByName enables a feature by name. Unknown names are an error so
// typos in configuration surface at startup.
func (b *RulesBuilder) EnableByName(name string) error {
	f := GetFeatureByName(name)
	if f == nil {
		return fmt.Errorf("unknown feature %q", name)
	}
	b.enabled[f.ID] = true
	return nil
}

func (b *RulesBuilder) DisableByName(name string) error {
	f := GetFeatureByName(name)
	if f == nil {
		return fmt.Errorf("unknown feature %q", name)
	}
	delete(b.enabled, f.ID)
	return nil
}

// Build creates the Rules instance.
func (b *RulesBuilder) Build() *Rules {
	enabledIDs := make([][32]byte, 0, len(b.enabled))
	for id := range b.enabled {
		enabledIDs = append(enabledIDs, id)
	}
	return NewRules(enabledIDs)
}

// OfferAcceptBlockedByAuction reports whether live auctions block plain offer acceptance.
func (r *Rules) OfferAcceptBlockedByAuction() bool {
	return r.Enabled(FeatureOfferAcceptBlockedByAuction)
}

// UniqueOffersEnabled returns true if the UniqueOffers feature is enabled.
func (r *Rules) UniqueOffersEnabled() bool {
	return r.Enabled(FeatureUniqueOffers)
}

// BuyNowInclusiveDeadline returns true if purchases at the deadline are allowed.
func (r *Rules) BuyNowInclusiveDeadline() bool {
	return r.Enabled(FeatureBuyNowInclusiveDeadline)
}
