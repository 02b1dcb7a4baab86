package crypto_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/parsa-mehek/LinkingLink-client/internal/crypto"
)

func TestGenerateSalt(t *testing.T) {
	salt1, err := crypto.GenerateSalt()
	if err != nil {
		t.Fatalf("Ошибка генерации соли: %v", err)
	}

	if len(salt1) != crypto.SaltLength {
		t.Errorf("Длина соли %d не соответствует ожидаемой %d", len(salt1), crypto.SaltLength)
	}

	salt2, err := crypto.GenerateSalt()
	if err != nil {
		t.Fatalf("Ошибка генерации соли: %v", err)
	}

	if bytes.Equal(salt1, salt2) {
		t.Error("Две последовательно сгенерированные соли одинаковы")
	}
}

func TestHashVerifyPassword(t *testing.T) {
	password := "test_password"

	// Тест успешного хеширования и проверки
	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("Ошибка хеширования пароля: %v", err)
	}

	if !crypto.VerifyPassword(password, hash) {
		t.Error("Проверка пароля не удалась для правильного пароля")
	}

	// Тест с неверным паролем
	wrongPassword := "wrong_password"
	if crypto.VerifyPassword(wrongPassword, hash) {
		t.Error("Проверка пароля успешна для неверного пароля")
	}

	// Тест с неверным хешем
	if crypto.VerifyPassword(password, "invalid_hash") {
		t.Error("Проверка пароля успешна для неверного хеша")
	}

	// Тест с пустым паролем
	emptyHash, err := crypto.HashPassword("")
	if err != nil {
		t.Fatalf("Ошибка хеширования пустого пароля: %v", err)
	}

	if !crypto.VerifyPassword("", emptyHash) {
		t.Error("Проверка пароля не удалась для пустого пароля")
	}
}

func TestHashPasswordUsesSalt(t *testing.T) {
	first, err := crypto.HashPassword("Passw0rd!demo")
	if err != nil {
		t.Fatalf("Ошибка хеширования пароля: %v", err)
	}

	second, err := crypto.HashPassword("Passw0rd!demo")
	if err != nil {
		t.Fatalf("Ошибка хеширования пароля: %v", err)
	}

	if first == second {
		t.Error("Хеши одного пароля совпадают, соль не применяется")
	}
}

func TestVerifyPasswordTruncatedHash(t *testing.T) {
	hash, err := crypto.HashPassword("Passw0rd!demo")
	if err != nil {
		t.Fatalf("Ошибка хеширования пароля: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		t.Fatalf("Ошибка декодирования хеша: %v", err)
	}

	truncated := base64.StdEncoding.EncodeToString(raw[:crypto.SaltLength])
	if crypto.VerifyPassword("Passw0rd!demo", truncated) {
		t.Error("Проверка пароля успешна для усеченного хеша")
	}
}
