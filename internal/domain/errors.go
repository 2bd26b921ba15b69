package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrWordBankNotFound indicates the word bank could not be loaded.
	ErrWordBankNotFound = errors.New("word bank not found")
	// ErrWordBankEmpty indicates a session was requested over a bank with no words.
	ErrWordBankEmpty = errors.New("word bank is empty")
	// ErrQuizNotFinished is returned when a summary is requested before the finish gate opens.
	ErrQuizNotFinished = errors.New("quiz not finished")
)
