package services

import "errors"

// ErrInvalidPassword - пустой пароль или хэш.
var ErrInvalidPassword = errors.New("invalid password")

// ErrHashingFailed оборачивает ошибки bcrypt при регистрации и смене пароля.
var ErrHashingFailed = errors.New("failed to hash password")
