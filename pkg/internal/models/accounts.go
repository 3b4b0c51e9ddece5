package models

import "github.com/samber/lo"

const PermManagePolls = "ManagePolls"

// Account is the identity handed over by the token middleware, it is never stored.
type Account struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Perms []string `json:"perms"`
}

func (v Account) HasPermNode(node string) bool {
	return lo.Contains(v.Perms, node)
}
