package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// AuditRunner định nghĩa interface cho nghiệp vụ cuối ngày
type AuditRunner interface {
	RunNightAudit() error
	SweepNoShows() error
}

var auditRunner AuditRunner

// SetAuditRunner thiết lập implementation cho AuditRunner
func SetAuditRunner(runner AuditRunner) {
	auditRunner = runner
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Night audit chạy lúc 2h sáng mỗi ngày: ghi tiền phòng và thuế
	// cho mọi khách đang lưu trú
	_, err := c.AddFunc("0 2 * * *", func() {
		now := time.Now()
		log.Printf("Đang chạy night audit lúc: %v", now)
		if auditRunner == nil {
			log.Printf("Lỗi: AuditRunner chưa được thiết lập")
			return
		}
		if err := auditRunner.RunNightAudit(); err != nil {
			log.Printf("Lỗi khi chạy night audit: %v", err)
		}
	})
	if err != nil {
		return err
	}

	// Quét no-show chạy lúc 3h sáng, sau khi night audit đã xong
	_, err = c.AddFunc("0 3 * * *", func() {
		log.Printf("Đang quét các reservation no-show")
		if auditRunner == nil {
			log.Printf("Lỗi: AuditRunner chưa được thiết lập")
			return
		}
		if err := auditRunner.SweepNoShows(); err != nil {
			log.Printf("Lỗi khi quét no-show: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
