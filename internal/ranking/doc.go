// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

// Package ranking filters, scores, and orders candidate care products for a
// user.
//
// The pipeline is filter -> score -> sort -> top-k -> explain:
//
//   - The allergy safety filter flags products whose ingredients, tags, or
//     avoid-for lists intersect the user's allergies. In warn mode (the
//     default) flagged products stay in the candidate set and carry their
//     issues into scoring; in strict mode they are removed.
//   - The scorer computes a 0-100 composite from four weighted sub-scores
//     (dermatological safety, product quality, feedback history, condition
//     match) and multiplies by a fixed penalty when allergy issues exist.
//     Every score is clamped to [0, 100] before and after the multiplier.
//   - The engine orchestrates the pipeline: each product is scored exactly
//     once, the result is stable-sorted by score descending, ranks are
//     assigned 1..n, and the list is truncated to k. An empty candidate list
//     yields an empty result, not an error.
//
// Scoring weights are fixed configuration, not trained parameters; any
// learned re-ranking lives outside this package.
package ranking
