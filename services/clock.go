package services

import "time"

// Clock cung cấp thời gian cho core, tách ra để test điều khiển được
// các nghiệp vụ phụ thuộc ngày (no-show, night audit)
type Clock interface {
	Now() time.Time
}

// SystemClock dùng đồng hồ hệ thống
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock trả về thời điểm cố định, dùng trong test
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
