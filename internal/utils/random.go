package utils

import (
	"fmt"
	"math/rand"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(role domain.Role, password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Phone:        GenerateRandomPhone(),
		Role:         role,
	}

	return user, nil
}

func GenerateRandomPhone() string {
	phone := "1" + string(digits[rand.Intn(9)+1])
	for i := 0; i < 9; i++ {
		phone += string(digits[rand.Intn(len(digits))])
	}
	return phone
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var bloodGroups = []string{"A", "B", "AB", "O"}
var genders = []string{"MALE", "FEMALE"}

func GenerateRandomPatientProfile(userID int64) *domain.PatientProfile {
	year := rand.Intn(60) + 1950
	month := rand.Intn(12) + 1
	day := rand.Intn(28) + 1

	return &domain.PatientProfile{
		UserID:           userID,
		DateOfBirth:      fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Gender:           genders[rand.Intn(len(genders))],
		BloodGroup:       bloodGroups[rand.Intn(len(bloodGroups))],
		EmergencyContact: GenerateRandomChineseName(),
		EmergencyPhone:   GenerateRandomPhone(),
	}
}

// GenerateConfirmationNumber 生成预约确认号，格式为前缀加 5 位随机数字。
// 唯一性只是尽力保证，真正防止重复预约的是存储层的唯一约束。
func GenerateConfirmationNumber() string {
	return fmt.Sprintf("APP-%d", rand.Intn(90000)+10000)
}
