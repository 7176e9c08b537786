package viewmodel

import "fmt"

// DeleteConfirmationState drives the admin delete dialog.
type DeleteConfirmationState struct {
	Required string `json:"required"`
	Input    string `json:"input"`
	Enabled  bool   `json:"enabled"`
}

// ConfirmationPhrase is the text an operator must type to delete username.
func ConfirmationPhrase(username string) string {
	return fmt.Sprintf("DELETE %s", username)
}

// DeleteConfirmation enables the delete action only when input is exactly
// the confirmation phrase. No trimming or case folding.
func DeleteConfirmation(username, input string) DeleteConfirmationState {
	required := ConfirmationPhrase(username)
	return DeleteConfirmationState{
		Required: required,
		Input:    input,
		Enabled:  username != "" && input == required,
	}
}
