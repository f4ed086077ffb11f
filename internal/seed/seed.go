package seed

import (
	"log/slog"
	"math/rand"

	"github.com/medisync-dev/hospital-manager/backend/internal/config"
	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
	"github.com/medisync-dev/hospital-manager/backend/internal/repository"
	"github.com/medisync-dev/hospital-manager/backend/internal/utils"
)

var demoBranches = []*domain.Branch{
	{Name: "云岭医院本部", Code: "HQ", Address: "云岭路 1 号", City: "广州", Phone: "020-88880001", Email: "hq@hospital.test"},
	{Name: "云岭医院东院区", Code: "EAST", Address: "东新路 88 号", City: "广州", Phone: "020-88880002", Email: "east@hospital.test"},
	{Name: "云岭医院南院区", Code: "SOUTH", Address: "南湖大道 6 号", City: "佛山", Phone: "0757-88880003", Email: "south@hospital.test"},
}

var demoSpecializations = []string{
	"内科", "外科", "儿科", "妇产科", "眼科", "口腔科", "皮肤科", "骨科",
}

// 常见的门诊出诊安排，周一到周五随机取其中一种
var demoScheduleWindows = []struct {
	startTime string
	endTime   string
}{
	{"08:30", "12:00"},
	{"09:00", "17:00"},
	{"13:30", "17:30"},
}

var demoSlotDurations = []int32{15, 20, 30}

// SeedDemoData 向数据库插入一套完整的演示数据：
// 院区、医生（含档案和每周排班）和患者（含档案）。
func SeedDemoData(cfg *config.Config, r *repository.Repository) {
	// 插入院区
	branches := make([]*domain.Branch, 0, len(demoBranches))
	for _, branch := range demoBranches {
		if err := r.CreateBranch(branch); err != nil {
			slog.Error("插入院区失败", "name", branch.Name, "error", err)
			continue
		}
		branches = append(branches, branch)
	}
	if len(branches) == 0 {
		slog.Error("没有成功插入任何院区")
		return
	}

	// 插入医生及其档案和每周排班
	for i := 0; i < 10; i++ {
		user, err := utils.GenerateRandomUser(domain.RoleDoctor, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成随机医生", "error", err)
			continue
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("插入医生失败", "error", err)
			continue
		}

		profile := &domain.DoctorProfile{
			UserID:              user.ID,
			BranchID:            branches[rand.Intn(len(branches))].ID,
			Specialization:      demoSpecializations[rand.Intn(len(demoSpecializations))],
			LicenseNumber:       "MD-" + user.Username,
			ConsultationFee:     float64(rand.Intn(40)+10) * 10,
			SlotDurationMinutes: demoSlotDurations[rand.Intn(len(demoSlotDurations))],
		}
		if err := r.CreateDoctorProfile(profile); err != nil {
			slog.Error("插入医生档案失败", "error", err)
			continue
		}

		entries := make([]*domain.WeeklyScheduleEntry, 0, 5)
		for day := int32(1); day <= 5; day++ {
			window := demoScheduleWindows[rand.Intn(len(demoScheduleWindows))]
			entries = append(entries, &domain.WeeklyScheduleEntry{
				DoctorID:  profile.ID,
				DayOfWeek: day,
				StartTime: window.startTime,
				EndTime:   window.endTime,
				IsActive:  true,
			})
		}
		if err := r.ReplaceWeeklySchedule(profile.ID, entries); err != nil {
			slog.Error("插入每周排班失败", "error", err)
			continue
		}
	}

	// 插入患者及其档案
	for i := 0; i < 20; i++ {
		user, err := utils.GenerateRandomUser(domain.RolePatient, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成随机患者", "error", err)
			continue
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("插入患者失败", "error", err)
			continue
		}

		profile := utils.GenerateRandomPatientProfile(user.ID)
		if err := r.CreatePatientProfile(profile); err != nil {
			slog.Error("插入患者档案失败", "error", err)
			continue
		}
	}

	slog.Info("插入演示数据完成")
}
