package domain

type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Points      int        `json:"points"`
	OrdersCount int        `json:"orders_count"`
	ModelsCount int        `json:"models_count"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
}

// Session is the persisted auth state. Token and User are stored and cleared
// together.
type Session struct {
	Token string
	User  User
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

type AuthMode string

const (
	AuthModeLogin    AuthMode = "login"
	AuthModeRegister AuthMode = "register"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Provider string `json:"provider"`
}

type AuthResult struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}
