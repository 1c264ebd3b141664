// Copyright (c) 2024-2025. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package amendment implements the marketplace policy switches. Rule changes
// that alter how an existing transaction behaves are introduced as named
// features, so an operator can pin the older behaviour explicitly.
package amendment

import (
	"crypto/sha512"
)

// VoteBehavior defines whether a feature is on when no operator preference is given.
type VoteBehavior int

const (
	// VoteDefaultNo means the feature is off unless enabled.
	VoteDefaultNo VoteBehavior = iota
	// VoteDefaultYes means the feature is on unless disabled.
	VoteDefaultYes
	// VoteObsolete means the feature can no longer be toggled.
	VoteObsolete
)

// Supported indicates whether this build implements a feature.
type Supported int

const (
	SupportedNo Supported = iota
	SupportedYes
)

// Feature is a named policy switch.
type Feature struct {
	// Name is the human-readable name of the feature.
	Name string
	// ID is the SHA-512 half of the feature name.
	ID [32]byte
	// Supported indicates if this code implements the feature.
	Supported Supported
	// Vote is the default state of the feature.
	Vote VoteBehavior
	// Description is shown by the CLI.
	Description string
}

// SHA512Half computes the SHA-512 hash and returns the first 32 bytes.
func SHA512Half(data []byte) [32]byte {
	hash := sha512.Sum512(data)
	var result [32]byte
	copy(result[:], hash[:32])
	return result
}

// FeatureID computes the feature ID from a feature name.
func FeatureID(name string) [32]byte {
	return SHA512Half([]byte(name))
}

func (f *Feature) IsSupported() bool {
	return f.Supported == SupportedYes
}

func (f *Feature) IsDefaultYes() bool {
	return f.Vote == VoteDefaultYes
}

func (f *Feature) IsObsolete() bool {
	return f.Vote == VoteObsolete
}

func (f *Feature) String() string {
	return f.Name
}
