package filters

import "github.com/yukikurage/scrum-board-api/internal/constants"

var UserSearch = Search{Columns: []string{"users." + constants.UserIdentityField}}

// UserOrdering has no client selectable fields; users are listed by username.
var UserOrdering = Ordering{
	Default:  "users." + constants.UserIdentityField,
	Tiebreak: "users.id",
}
