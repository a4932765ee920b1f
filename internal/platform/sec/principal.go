// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Principal

// Principal is the authenticated identity attached to a request.
//
// Authorities holds role names. It is never nil for a loaded principal; a user
// without roles carries an empty slice.
type Principal struct {
	ID          int64
	Login       string
	Name        string
	Authorities []string
}
