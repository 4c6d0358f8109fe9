package models

import "errors"

// Custom errors
var (
	ErrTeamCodeRequired    = errors.New("team code is required")
	ErrMissingColumn       = errors.New("missing required column")
	ErrDuplicateTeam       = errors.New("duplicate team rating")
	ErrInconsistentSpread  = errors.New("inconsistent home/away spread")
	ErrUnknownInjuryStatus = errors.New("unknown injury status")
	ErrNoProbabilityColumn = errors.New("no probability or logit column found")
	ErrNoLabelColumn       = errors.New("no label column found")
	ErrUnknownCalibration  = errors.New("unknown calibration method")
	ErrEmptySlate          = errors.New("no games in slate")
	ErrNotFound            = errors.New("record not found")
)
