package utils

import (
	"strings"
	"testing"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateConfirmationNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		number := GenerateConfirmationNumber()
		if !strings.HasPrefix(number, "APP-") {
			t.Fatalf("确认号应当以 APP- 开头: got %q", number)
		}
		digits := strings.TrimPrefix(number, "APP-")
		if len(digits) != 5 {
			t.Fatalf("确认号应当包含 5 位数字: got %q", number)
		}
		for _, c := range digits {
			if c < '0' || c > '9' {
				t.Fatalf("确认号包含非数字字符: got %q", number)
			}
		}
	}
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := GenerateRandomOTP()
		if len(otp) != 6 {
			t.Fatalf("OTP 长度应当为 6: got %q", otp)
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	for _, length := range []int{8, 12, 20} {
		password := GenerateRandomPassword(length)
		if len(password) != length {
			t.Errorf("密码长度错误: got %d, want %d", len(password), length)
		}
	}
}

func TestGenerateRandomPhone(t *testing.T) {
	for i := 0; i < 100; i++ {
		phone := GenerateRandomPhone()
		if len(phone) != 11 {
			t.Fatalf("手机号长度应当为 11: got %q", phone)
		}
		if phone[0] != '1' {
			t.Fatalf("手机号应当以 1 开头: got %q", phone)
		}
	}
}

func TestGenerateRandomUser(t *testing.T) {
	user, err := GenerateRandomUser(domain.RoleDoctor, "test-password", "hospital.test")
	if err != nil {
		t.Fatalf("生成随机用户出错: %v", err)
	}

	if user.Username == "" || user.FullName == "" {
		t.Error("用户名和姓名不应当为空")
	}
	if user.Role != domain.RoleDoctor {
		t.Errorf("角色错误: got %s", user.Role)
	}
	if !strings.HasSuffix(user.Email, "@hospital.test") {
		t.Errorf("邮箱域名错误: got %q", user.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("test-password")); err != nil {
		t.Error("密码哈希与原始密码不匹配")
	}
}

func TestGenerateRandomPatientProfile(t *testing.T) {
	profile := GenerateRandomPatientProfile(42)

	if profile.UserID != 42 {
		t.Errorf("用户 ID 错误: got %d", profile.UserID)
	}
	if len(profile.DateOfBirth) != 10 {
		t.Errorf("出生日期格式错误: got %q", profile.DateOfBirth)
	}
	if profile.Gender != "MALE" && profile.Gender != "FEMALE" {
		t.Errorf("性别错误: got %q", profile.Gender)
	}
}
