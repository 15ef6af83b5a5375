package model

// Branch is a selectable organizational unit. It scopes both login
// and list queries.
type Branch struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CNPJ      string `json:"cnpj"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// BranchRef is the minimal branch reference embedded in other records
// (e.g. the profile returned by the auth endpoints).
type BranchRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
