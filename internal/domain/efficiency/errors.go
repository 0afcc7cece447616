package efficiency

import "errors"

// Efficiency domain errors
var (
	ErrTemplateNotFound     = errors.New("efficiency template not found")
	ErrTemplateInactive     = errors.New("efficiency template is not active")
	ErrEvaluationNotFound   = errors.New("efficiency evaluation not found")
	ErrInvalidStatusChange  = errors.New("invalid evaluation status transition")
	ErrUnsupportedSubmitter = errors.New("unauthorized to evaluate this employee")
)
