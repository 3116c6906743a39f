package postgres

type auditEntryTableModel struct {
	ID         int64  `db:"id"`
	PublicID   string `db:"public_id"`
	ActorID    string `db:"actor_id"`
	Action     string `db:"action"`
	EntityType string `db:"entity_type"`
	EntityID   string `db:"entity_id"`
	Metadata   []byte `db:"metadata"`
	CreatedAt  int64  `db:"created_at"`
}

type auditEntryInsertModel struct {
	PublicID   string `db:"public_id"`
	ActorID    string `db:"actor_id"`
	Action     string `db:"action"`
	EntityType string `db:"entity_type"`
	EntityID   string `db:"entity_id"`
	Metadata   []byte `db:"metadata"`
	CreatedAt  int64  `db:"created_at"`
}
