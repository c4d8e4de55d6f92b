package domain

// Connection is a live client session. Room is empty until the first join.
type Connection struct {
	ID   string
	Name string
	Room string
}

func (c Connection) IsJoined() bool {
	return c.Room != ""
}

// UserInfo is the public view of a connection.
type UserInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	CurrentRoom string `json:"currentRoom"`
}

func (c Connection) Info() UserInfo {
	return UserInfo{
		ID:          c.ID,
		Username:    c.Name,
		CurrentRoom: c.Room,
	}
}
