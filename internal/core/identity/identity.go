package identity

// Identity represents a verified caller identity produced by the identity
// provider. It contains facts only: the provider-scoped subject id and the
// email carried in the verified token claims.
type Identity struct {
	SubjectID string `json:"subjectId"`
	Email     string `json:"email"`
}
