/*
 * Copyright 2025 The Inkstone Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package orderkey implements fractional indexing for sibling ordering.
//
// An order key is an opaque string that sorts correctly under plain string
// comparison. Between any two keys another key can be generated without
// renumbering existing siblings; keys may grow in length under repeated
// insertion between the same neighbors.
//
// A key is a variable-length integer part followed by an optional fraction.
// The first byte encodes the integer length: heads 'a'..'z' are positive
// integers of 2..27 digits, heads 'Z'..'A' are negative integers of 2..27
// bytes, so all keys order correctly byte-wise. Digits are base-62 in
// ASCII order. The fraction never ends with the smallest digit, which
// keeps keys canonical.
package orderkey

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/inkstone-notes/inkstone/api/types"
)

const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// InitialKey is the key assigned to the first block of an empty sibling set.
const InitialKey = "a0"

// smallestInt is the minimum representable integer part. Nothing can be
// allocated before a key with this integer part other than by extending
// its fraction downward.
var smallestInt = "A" + strings.Repeat("0", 26)

var (
	// ErrInvalidKey is returned when a key cannot be parsed.
	ErrInvalidKey = errors.New("invalid order key")

	// ErrInvalidBounds is returned when the lower bound does not sort
	// strictly before the upper bound.
	ErrInvalidBounds = errors.New("invalid order key bounds")

	// ErrSiblingNotFound is returned when a before/after placement names a
	// sibling that is not part of the sibling set.
	ErrSiblingNotFound = errors.New("sibling not found")

	// ErrInvalidPlacement is returned when the placement position is unknown.
	ErrInvalidPlacement = errors.New("invalid placement")
)

// Position designates where a block lands among its siblings.
type Position string

const (
	// Start places the block before every current sibling.
	Start Position = "start"

	// End places the block after every current sibling.
	End Position = "end"

	// Before places the block immediately before the named sibling.
	Before Position = "before"

	// After places the block immediately after the named sibling.
	After Position = "after"
)

// Placement is a position plus the sibling it is relative to, when the
// position needs one.
type Placement struct {
	Position  Position `json:"position"`
	SiblingID types.ID `json:"siblingId,omitempty"`
}

// Sibling is the id and current order key of one existing sibling.
type Sibling struct {
	ID  types.ID
	Key string
}

// Allocate computes the order key for a block placed among the given
// siblings. If explicit is non-empty it is returned verbatim; the caller
// is responsible for checking uniqueness. The sibling slice is not
// modified.
func Allocate(siblings []Sibling, placement Placement, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	sorted := make([]Sibling, len(siblings))
	copy(sorted, siblings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})

	switch placement.Position {
	case Start:
		if len(sorted) == 0 {
			return Between("", "")
		}
		return Between("", sorted[0].Key)
	case End:
		if len(sorted) == 0 {
			return Between("", "")
		}
		return Between(sorted[len(sorted)-1].Key, "")
	case Before, After:
		idx := -1
		for i, sib := range sorted {
			if sib.ID == placement.SiblingID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return "", fmt.Errorf("%s: %w", placement.SiblingID, ErrSiblingNotFound)
		}

		if placement.Position == Before {
			left := ""
			if idx > 0 {
				left = sorted[idx-1].Key
			}
			return Between(left, sorted[idx].Key)
		}

		right := ""
		if idx < len(sorted)-1 {
			right = sorted[idx+1].Key
		}
		return Between(sorted[idx].Key, right)
	default:
		return "", fmt.Errorf("%q: %w", placement.Position, ErrInvalidPlacement)
	}
}

// IsUnique reports whether key collides with no sibling's current key.
func IsUnique(siblings []Sibling, key string) bool {
	for _, sib := range siblings {
		if sib.Key == key {
			return false
		}
	}
	return true
}

// Between returns a key strictly between a and b. An empty a means
// unbounded below, an empty b means unbounded above; with both empty the
// initial key is returned.
func Between(a, b string) (string, error) {
	if a != "" {
		if err := Validate(a); err != nil {
			return "", err
		}
	}
	if b != "" {
		if err := Validate(b); err != nil {
			return "", err
		}
	}
	if a != "" && b != "" && a >= b {
		return "", fmt.Errorf("%q >= %q: %w", a, b, ErrInvalidBounds)
	}

	if a == "" {
		if b == "" {
			return InitialKey, nil
		}

		ib, err := intPart(b)
		if err != nil {
			return "", err
		}
		fb := b[len(ib):]
		if ib == smallestInt {
			return ib + midpoint("", fb), nil
		}
		// The integer part alone sorts before b when b has a fraction.
		if ib < b {
			return ib, nil
		}
		res, err := decrementInt(ib)
		if err != nil {
			return "", err
		}
		if res == "" {
			return "", fmt.Errorf("no key before %q: %w", b, ErrInvalidBounds)
		}
		return res, nil
	}

	if b == "" {
		ia, err := intPart(a)
		if err != nil {
			return "", err
		}
		fa := a[len(ia):]
		next, err := incrementInt(ia)
		if err != nil {
			return "", err
		}
		if next == "" {
			return ia + midpoint(fa, ""), nil
		}
		return next, nil
	}

	ia, err := intPart(a)
	if err != nil {
		return "", err
	}
	fa := a[len(ia):]
	ib, err := intPart(b)
	if err != nil {
		return "", err
	}
	fb := b[len(ib):]

	if ia == ib {
		return ia + midpoint(fa, fb), nil
	}

	next, err := incrementInt(ia)
	if err != nil {
		return "", err
	}
	if next != "" && next < b {
		return next, nil
	}
	return ia + midpoint(fa, ""), nil
}

// Validate returns an error unless key is a canonical order key.
func Validate(key string) error {
	ip, err := intPart(key)
	if err != nil {
		return err
	}

	fraction := key[len(ip):]
	if strings.HasSuffix(fraction, string(digits[0])) {
		return fmt.Errorf("%q has a trailing minimum digit: %w", key, ErrInvalidKey)
	}
	for i := 0; i < len(fraction); i++ {
		if strings.IndexByte(digits, fraction[i]) < 0 {
			return fmt.Errorf("%q: %w", key, ErrInvalidKey)
		}
	}

	return nil
}

// intLen returns the total length of an integer part with the given head.
func intLen(head byte) (int, error) {
	switch {
	case head >= 'a' && head <= 'z':
		return int(head-'a') + 2, nil
	case head >= 'A' && head <= 'Z':
		return int('Z'-head) + 2, nil
	default:
		return 0, fmt.Errorf("head %q: %w", string(head), ErrInvalidKey)
	}
}

// intPart returns the integer part prefix of key.
func intPart(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key: %w", ErrInvalidKey)
	}

	n, err := intLen(key[0])
	if err != nil {
		return "", err
	}
	if n > len(key) {
		return "", fmt.Errorf("%q is truncated: %w", key, ErrInvalidKey)
	}

	ip := key[:n]
	for i := 1; i < len(ip); i++ {
		if strings.IndexByte(digits, ip[i]) < 0 {
			return "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
		}
	}
	return ip, nil
}

// incrementInt returns the next integer part after x, or "" when x is the
// largest representable integer.
func incrementInt(x string) (string, error) {
	if _, err := intPart(x); err != nil {
		return "", err
	}

	head := x[0]
	digs := []byte(x[1:])
	carry := true
	for i := len(digs) - 1; carry && i >= 0; i-- {
		d := strings.IndexByte(digits, digs[i]) + 1
		if d == len(digits) {
			digs[i] = digits[0]
		} else {
			digs[i] = digits[d]
			carry = false
		}
	}

	if carry {
		if head == 'Z' {
			return "a0", nil
		}
		if head == 'z' {
			return "", nil
		}
		next := head + 1
		if next >= 'a' {
			// Positive integers grow by one digit when the head advances.
			digs = append(digs, digits[0])
		} else {
			// Negative integers shrink toward zero.
			digs = digs[:len(digs)-1]
		}
		return string(next) + string(digs), nil
	}
	return string(head) + string(digs), nil
}

// decrementInt returns the previous integer part before x, or "" when x is
// the smallest representable integer.
func decrementInt(x string) (string, error) {
	if _, err := intPart(x); err != nil {
		return "", err
	}

	head := x[0]
	digs := []byte(x[1:])
	borrow := true
	for i := len(digs) - 1; borrow && i >= 0; i-- {
		d := strings.IndexByte(digits, digs[i]) - 1
		if d < 0 {
			digs[i] = digits[len(digits)-1]
		} else {
			digs[i] = digits[d]
			borrow = false
		}
	}

	if borrow {
		if head == 'a' {
			return "Z" + string(digits[len(digits)-1]), nil
		}
		if head == 'A' {
			return "", nil
		}
		prev := head - 1
		if prev >= 'a' {
			digs = digs[:len(digs)-1]
		} else {
			// Negative integers grow by one digit as they move away from zero.
			digs = append(digs, digits[len(digits)-1])
		}
		return string(prev) + string(digs), nil
	}
	return string(head) + string(digs), nil
}

// midpoint returns a digit string strictly between fractions a and b,
// where "" means zero on the left and unbounded on the right. Requires
// a < b under zero-padded comparison when b is non-empty.
func midpoint(a, b string) string {
	if b != "" {
		// Strip the longest common prefix, padding a with minimum digits.
		i := 0
		for ; i < len(b); i++ {
			c := digits[0]
			if i < len(a) {
				c = a[i]
			}
			if c != b[i] {
				break
			}
		}
		if i > 0 {
			rest := ""
			if i < len(a) {
				rest = a[i:]
			}
			return b[:i] + midpoint(rest, b[i:])
		}
	}

	digitA := 0
	if a != "" {
		digitA = strings.IndexByte(digits, a[0])
	}
	digitB := len(digits)
	if b != "" {
		digitB = strings.IndexByte(digits, b[0])
	}

	if digitB-digitA > 1 {
		return string(digits[(digitA+digitB+1)/2])
	}

	// First digits are consecutive.
	if len(b) > 1 {
		return b[:1]
	}

	rest := ""
	if a != "" {
		rest = a[1:]
	}
	return string(digits[digitA]) + midpoint(rest, "")
}
