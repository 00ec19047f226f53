package validation

import (
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

// Ограничения полей пользователя.
const (
	UsernameMaxLength = 30
	PasswordMinLength = 8
	PasswordMaxLength = 128
	BioMaxLength      = 1000
)

// Сообщения схем пользователя.
const (
	msgUsernameRequired = "Username is required"
	msgUsernameTooLong  = "Username must be no more than 30 characters long"
	msgUsernameCharset  = "Username can only contain letters, numbers, underscores, and hyphens"
	msgPasswordTooShort = "Password must be at least 8 characters long"
	msgPasswordTooLong  = "Password must be no more than 128 characters long"
	msgPasswordWeak     = "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"
	msgPasswordRequired = "Password is required"
	msgBioTooLong       = "Bio must be no more than 1000 characters"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Стандартный regexp не поддерживает lookahead, поэтому сложность пароля
// проверяется одним выражением через regexp2.
var passwordPattern = func() *regexp2.Regexp {
	re := regexp2.MustCompile(`^(?=.*[a-z])(?=.*[A-Z])(?=.*\d)(?=.*[@$!%*?&])[A-Za-z\d@$!%*?&]+$`, regexp2.ECMAScript)
	re.MatchTimeout = 100 * time.Millisecond
	return re
}()

// UsernameSchema: 1-30 символов из [A-Za-z0-9_-]. Значение не обрезается.
var UsernameSchema Schema[string] = SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
	s, issues := expectString(path, raw, msgUsernameRequired)
	if issues != nil {
		return "", issues
	}

	n := length(s)
	if n < 1 {
		issues = append(issues, newIssue(path, CodeTooShort, msgUsernameRequired))
	}
	if n > UsernameMaxLength {
		issues = append(issues, newIssue(path, CodeTooLong, msgUsernameTooLong))
	}
	if !usernamePattern.MatchString(s) {
		issues = append(issues, newIssue(path, CodeInvalidFormat, msgUsernameCharset))
	}
	if issues != nil {
		return "", issues
	}
	return s, nil
})

// PasswordSchema: 8-128 символов, строчная и заглавная буквы, цифра и спецсимвол.
var PasswordSchema Schema[string] = SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
	s, issues := expectString(path, raw, msgPasswordRequired)
	if issues != nil {
		return "", issues
	}

	n := length(s)
	if n < PasswordMinLength {
		issues = append(issues, newIssue(path, CodeTooShort, msgPasswordTooShort))
	}
	if n > PasswordMaxLength {
		issues = append(issues, newIssue(path, CodeTooLong, msgPasswordTooLong))
	}
	// Ошибка regexp2 возможна только по таймауту, такое значение считается невалидным.
	if ok, err := passwordPattern.MatchString(s); err != nil || !ok {
		issues = append(issues, newIssue(path, CodeInvalidFormat, msgPasswordWeak))
	}
	if issues != nil {
		return "", issues
	}
	return s, nil
})

// LoginPasswordSchema проверяет только непустоту пароля.
var LoginPasswordSchema Schema[string] = SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
	s, issues := expectString(path, raw, msgPasswordRequired)
	if issues != nil {
		return "", issues
	}
	if s == "" {
		return "", []Issue{newIssue(path, CodeTooShort, msgPasswordRequired)}
	}
	return s, nil
})

// BioSchema: не более 1000 символов, пробелы сохраняются.
var BioSchema Schema[string] = SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
	s, issues := expectString(path, raw, "Required")
	if issues != nil {
		return "", issues
	}
	if length(s) > BioMaxLength {
		return "", []Issue{newIssue(path, CodeTooLong, msgBioTooLong)}
	}
	return s, nil
})

// ImageURLSchema принимает только http и https.
var ImageURLSchema = URLSchema("http", "https")

// RegisterUser - данные регистрации.
type RegisterUser struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// UserRegistration - тело запроса регистрации {"user": {...}}.
type UserRegistration struct {
	User RegisterUser `json:"user"`
}

// LoginUser - учетные данные для входа.
type LoginUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLogin - тело запроса входа {"user": {...}}.
type UserLogin struct {
	User LoginUser `json:"user"`
}

// UserChanges - изменяемые поля пользователя; nil означает "не передано".
type UserChanges struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// UserUpdate - тело запроса обновления {"user": {...}}.
type UserUpdate struct {
	User UserChanges `json:"user"`
}

var (
	optionalUsername = Optional(UsernameSchema)
	optionalEmail    = Optional(EmailSchema)
	optionalPassword = Optional(PasswordSchema)
	optionalBio      = Optional(BioSchema)
	optionalImage    = Optional(ImageURLSchema)
)

// RegisterSchema - схема регистрации; лишние ключи внутри "user" запрещены.
var RegisterSchema = objectSchema(func(o *objectReader) UserRegistration {
	user := nested(o, "user", func(u *objectReader) RegisterUser {
		return RegisterUser{
			Username: field(u, "username", UsernameSchema),
			Email:    field(u, "email", EmailSchema),
			Password: field(u, "password", PasswordSchema),
			Bio:      field(u, "bio", optionalBio),
			Image:    field(u, "image", optionalImage),
		}
	}, "username", "email", "password", "bio", "image")
	return UserRegistration{User: user}
})

// LoginSchema - схема входа; неизвестные ключи отбрасываются.
var LoginSchema = objectSchema(func(o *objectReader) UserLogin {
	user := nested(o, "user", func(u *objectReader) LoginUser {
		return LoginUser{
			Email:    field(u, "email", EmailSchema),
			Password: field(u, "password", LoginPasswordSchema),
		}
	})
	return UserLogin{User: user}
})

// UpdateUserSchema - все поля необязательны, правила полей совпадают с регистрацией.
var UpdateUserSchema = objectSchema(func(o *objectReader) UserUpdate {
	user := nested(o, "user", func(u *objectReader) UserChanges {
		return UserChanges{
			Username: field(u, "username", optionalUsername),
			Email:    field(u, "email", optionalEmail),
			Password: field(u, "password", optionalPassword),
			Bio:      field(u, "bio", optionalBio),
			Image:    field(u, "image", optionalImage),
		}
	})
	return UserUpdate{User: user}
})

// ValidateUserRegistration проверяет тело запроса регистрации.
func ValidateUserRegistration(data any) Result[UserRegistration] {
	return Parse(RegisterSchema, data)
}

// ValidateUserLogin проверяет тело запроса входа.
func ValidateUserLogin(data any) Result[UserLogin] {
	return Parse(LoginSchema, data)
}

// ValidateUserUpdate проверяет тело запроса обновления пользователя.
func ValidateUserUpdate(data any) Result[UserUpdate] {
	return Parse(UpdateUserSchema, data)
}
