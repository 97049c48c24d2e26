package service

// CodeGenerator produces one-time login codes of exactly six ASCII digits.
type CodeGenerator interface {
	Generate() (string, error)
}
