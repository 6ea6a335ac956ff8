package valueobject

type Role string

const (
	RoleCreator  Role = "creator"
	RoleConsumer Role = "consumer"
)

func (r Role) IsValid() bool {
	return r == RoleCreator || r == RoleConsumer
}
