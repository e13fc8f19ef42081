package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// schema initializer errors
const (
	ErrSchemaFileMissing = Error("schema file not found")
	ErrSchemaExecution   = Error("schema execution failed")
)

// repository errors
const (
	ErrPostNotFound = Error("post not found")
	ErrDbWrite      = Error("database write failed")
	ErrDuplicate    = Error("unique constraint violation")
	ErrForeignKey   = Error("foreign key constraint violation")
)

// cli errors
const ErrorCreateFile = Error("could not create the file")
