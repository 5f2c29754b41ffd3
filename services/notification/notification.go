package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

// Service gửi thông báo sau khi một thao tác lifecycle đã commit.
// Lỗi gửi thông báo không bao giờ làm rollback thao tác đã commit.
type Service interface {
	SendMessage(message string) error
}

// MelodyService broadcast thông báo tới các terminal lễ tân qua websocket
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// CheckOutMessage builder cho thông báo check-out
type CheckOutMessage struct {
	confirmationNumber string
	roomNumber         string
}

func NewCheckOutMessage(confirmationNumber, roomNumber string) *CheckOutMessage {
	return &CheckOutMessage{
		confirmationNumber: confirmationNumber,
		roomNumber:         roomNumber,
	}
}

func (b *CheckOutMessage) Build() string {
	return fmt.Sprintf("🔔 Reservation %s đã check-out, phòng %s chờ dọn.", b.confirmationNumber, b.roomNumber)
}

// CancellationMessage builder cho thông báo hủy reservation
type CancellationMessage struct {
	confirmationNumber string
	reason             string
}

func NewCancellationMessage(confirmationNumber, reason string) *CancellationMessage {
	return &CancellationMessage{
		confirmationNumber: confirmationNumber,
		reason:             reason,
	}
}

func (b *CancellationMessage) Build() string {
	return fmt.Sprintf("🔔 Reservation %s đã bị hủy: %s", b.confirmationNumber, b.reason)
}

// NoShowMessage builder cho thông báo no-show
type NoShowMessage struct {
	confirmationNumber string
}

func NewNoShowMessage(confirmationNumber string) *NoShowMessage {
	return &NoShowMessage{confirmationNumber: confirmationNumber}
}

func (b *NoShowMessage) Build() string {
	return fmt.Sprintf("🔔 Reservation %s được đánh dấu no-show.", b.confirmationNumber)
}
