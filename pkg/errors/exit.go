package errors

// Exit statuses, following sysexits(3).
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitDataErr     = 65 // the document or configuration is invalid
	ExitNoInput     = 66 // an input file does not exist
	ExitUnavailable = 69 // a renderer failed or is missing
)

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetCode(err) {
	case ErrCodeFileNotFound:
		return ExitNoInput
	case ErrCodeRender:
		return ExitUnavailable
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidConnection,
		ErrCodeInvalidShape, ErrCodeInvalidName, ErrCodeMalformedScope,
		ErrCodeDuplicateBox, ErrCodeUnknownBox, ErrCodeDecode:
		return ExitDataErr
	}
	return ExitFailure
}
