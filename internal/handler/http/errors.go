// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrMalformedBody is returned when a request body is not valid JSON or does
// not match the expected shape.
var ErrMalformedBody = errors.New("malformed request body")

// Response messages.
const (
	msgInvalidCredentials = "The email or password you entered is incorrect!"
	msgNotAuthenticated   = "Authentication credentials were not provided."
	msgTokenInvalid       = "Token is invalid or expired"
	msgForbidden          = "You do not have permission to perform this action."
	msgNotFound           = "Not found."
	msgMethodNotAllowed   = "Method %q not allowed."
	msgInternal           = "Something is wrong on our end. Please try again later."
	msgMissingEmail       = "Missing email query param"
	msgInvalidResetToken  = "Could not reset password.  Reset token expired or invalid."
	msgInvalidValue       = "Invalid value."
	msgInvalidReference   = "Invalid pk - object does not exist."
	msgMalformedBody      = "JSON parse error - request body is malformed."

	detailVerificationSent = "Verification e-mail sent."
	detailOK               = "ok"
	detailResetSent        = "Password reset e-mail has been sent."
	detailPasswordReset    = "Password has been reset with the new password."
	detailPasswordChanged  = "New password has been saved."
	detailLoggedOut        = "Successfully logged out."
)
