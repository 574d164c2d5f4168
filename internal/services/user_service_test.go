package services

import (
	"testing"

	"spendwise/internal/testutil"
)

// captureNotifier records the last reset token handed to it.
type captureNotifier struct {
	email string
	token string
}

func (n *captureNotifier) SendPasswordReset(email, token string) {
	n.email = email
	n.token = token
}

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})

		user, err := svc.CreateUser("Alice", "alice@example.com", "secret123")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.Password == "secret123" {
			t.Error("expected password to be hashed")
		}
		if !svc.VerifyPassword(user, "secret123") {
			t.Error("expected stored hash to verify against the password")
		}
	})

	t.Run("email_lowercased", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})

		user, err := svc.CreateUser("Bob", "Bob@Example.COM", "secret123")
		testutil.AssertNoError(t, err)

		if user.Email != "bob@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})

		_, err := svc.CreateUser("Alice", "alice@example.com", "secret123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Other Alice", "ALICE@example.com", "secret456")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})

		_, err := svc.CreateUser("Alice", "", "secret123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("Alice", "alice@example.com", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("default_role", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})

		user, err := svc.CreateUser("Alice", "alice@example.com", "secret123")
		testutil.AssertNoError(t, err)

		if user.Role.Name != "user" {
			t.Errorf("expected default role user, got %s", user.Role.Name)
		}
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})
		created := testutil.CreateTestUser(t, db)

		user, err := svc.GetUserByEmail(created.Email)
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})

		_, err := svc.GetUserByEmail("nobody@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("change_name_and_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})
		user := testutil.CreateTestUser(t, db)

		updated, err := svc.UpdateProfile(user.ID, "New Name", "new@example.com")
		testutil.AssertNoError(t, err)

		fresh, err := svc.GetUserByID(updated.ID)
		testutil.AssertNoError(t, err)
		if fresh.Name != "New Name" {
			t.Errorf("expected name New Name, got %s", fresh.Name)
		}
		if fresh.Email != "new@example.com" {
			t.Errorf("expected email new@example.com, got %s", fresh.Email)
		}
	})

	t.Run("email_taken", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user2.ID, "", user1.Email)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})
		user := testutil.CreateTestUser(t, db)

		err := svc.ChangePassword(user.ID, "password123", "newpassword")
		testutil.AssertNoError(t, err)

		fresh, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if !svc.VerifyPassword(fresh, "newpassword") {
			t.Error("expected new password to verify")
		}
		if svc.VerifyPassword(fresh, "password123") {
			t.Error("expected old password to stop working")
		}
	})

	t.Run("wrong_current_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})
		user := testutil.CreateTestUser(t, db)

		err := svc.ChangePassword(user.ID, "wrong", "newpassword")
		testutil.AssertAppError(t, err, "WRONG_PASSWORD")
	})
}

func TestPasswordReset(t *testing.T) {
	t.Run("full_flow", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notifier := &captureNotifier{}
		svc := NewUserService(db, notifier)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.RequestPasswordReset(user.Email))
		if notifier.token == "" {
			t.Fatal("expected a reset token to be issued")
		}
		if notifier.email != user.Email {
			t.Errorf("expected token sent to %s, got %s", user.Email, notifier.email)
		}

		testutil.AssertNoError(t, svc.ResetPassword(notifier.token, "resetpass"))

		fresh, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if !svc.VerifyPassword(fresh, "resetpass") {
			t.Error("expected reset password to verify")
		}
	})

	t.Run("unknown_email_is_silent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notifier := &captureNotifier{}
		svc := NewUserService(db, notifier)

		testutil.AssertNoError(t, svc.RequestPasswordReset("nobody@example.com"))
		if notifier.token != "" {
			t.Error("expected no token for unknown email")
		}
	})

	t.Run("token_single_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notifier := &captureNotifier{}
		svc := NewUserService(db, notifier)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.RequestPasswordReset(user.Email))
		testutil.AssertNoError(t, svc.ResetPassword(notifier.token, "resetpass"))

		err := svc.ResetPassword(notifier.token, "anotherpass")
		testutil.AssertAppError(t, err, "INVALID_RESET_TOKEN")
	})

	t.Run("bogus_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, &captureNotifier{})

		err := svc.ResetPassword("not-a-real-token", "resetpass")
		testutil.AssertAppError(t, err, "INVALID_RESET_TOKEN")
	})
}
