// Copyright (c) 2024-2025. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package amendment

import (
	"sort"
	"sync"
)

// Global feature registry
var (
	registryMu     sync.RWMutex
	features       = make(map[[32]byte]*Feature)
	featuresByName = make(map[string]*Feature)
)

// Feature IDs - computed at init time
var (
	// FeatureOfferAcceptBlockedByAuction rejects a plain offer acceptance
	// while any auction for the same token and nonce is still stored.
	FeatureOfferAcceptBlockedByAuction [32]byte

	// FeatureUniqueOffers allows one live offer per
	// (offeror, token, nonce, payment token).
	FeatureUniqueOffers [32]byte

	// FeatureBuyNowInclusiveDeadline accepts fixed-price purchases made
	// exactly at the deadline.
	FeatureBuyNowInclusiveDeadline [32]byte
)

func init() {
	registerFeature("OfferAcceptBlockedByAuction", SupportedYes, VoteDefaultYes,
		"plain offer acceptance fails while an auction exists on the same asset",
		&FeatureOfferAcceptBlockedByAuction)
	registerFeature("UniqueOffers", SupportedYes, VoteDefaultYes,
		"one live offer per offeror, asset and payment token",
		&FeatureUniqueOffers)
	registerFeature("BuyNowInclusiveDeadline", SupportedYes, VoteDefaultNo,
		"fixed-price purchases are accepted at the deadline itself",
		&FeatureBuyNowInclusiveDeadline)
}

// registerFeature registers a feature with the given parameters.
func registerFeature(name string, supported Supported, vote VoteBehavior, description string, idPtr *[32]byte) {
	id := FeatureID(name)
	*idPtr = id

	f := &Feature{
		Name:        name,
		ID:          id,
		Supported:   supported,
		Vote:        vote,
		Description: description,
	}

	registryMu.Lock()
	features[id] = f
	featuresByName[name] = f
	registryMu.Unlock()
}

// GetFeature returns the feature with the given ID, or nil if not found.
func GetFeature(id [32]byte) *Feature {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return features[id]
}

// GetFeatureByName returns the feature with the given name, or nil if not found.
func GetFeatureByName(name string) *Feature {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return featuresByName[name]
}

// AllFeatures returns every registered feature sorted by name.
func AllFeatures() []*Feature {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]*Feature, 0, len(features))
	for _, f := range features {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// FeatureCount returns the total number of registered features.
func FeatureCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(features)
}
