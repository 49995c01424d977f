// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is the profile returned by the server on login.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// Credentials is what a user types to log in.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
