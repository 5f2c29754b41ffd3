package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"jvracle/constants"
	apperrors "jvracle/errors"
	"jvracle/models"
	"jvracle/services/logger"
	"jvracle/storage"
)

// RoomRegistry giữ trạng thái phòng và bảng gán phòng theo ngày.
// Gán/trả phòng chỉ được gọi bởi state machine đã Bind; mọi caller khác
// bị từ chối với FORBIDDEN. Mỗi phòng là một critical section riêng.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*roomEntry
	tasks map[string]models.HousekeepingTask

	binder   *ReservationService
	onChange func()

	store storage.Store
	clock Clock
	log   logger.Logger
}

type roomEntry struct {
	mu          sync.Mutex
	room        models.Room
	assignments []assignment
}

type assignment struct {
	reservationID string
	from          time.Time
	to            time.Time
	released      bool
}

// NewRoomRegistry tạo instance mới của RoomRegistry
func NewRoomRegistry(store storage.Store, clock Clock, log logger.Logger) *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*roomEntry),
		tasks: make(map[string]models.HousekeepingTask),
		store: store,
		clock: clock,
		log:   log,
	}
}

// Bind đăng ký state machine duy nhất được phép gán/trả phòng
func (r *RoomRegistry) Bind(machine *ReservationService) {
	r.binder = machine
}

// SetOnChange gắn hook gọi mỗi khi trạng thái phòng thay đổi (xóa cache board)
func (r *RoomRegistry) SetOnChange(fn func()) {
	r.onChange = fn
}

// AddRoom thêm phòng vào registry lúc thiết lập property
func (r *RoomRegistry) AddRoom(room models.Room) error {
	if room.Number == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "room number is required", nil)
	}
	if room.Status == "" {
		room.Status = constants.RoomStatusClean
	}
	if err := room.ValidateStatus(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), err)
	}

	r.mu.Lock()
	if _, exists := r.rooms[room.Number]; exists {
		r.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeValidation,
			fmt.Sprintf("room %s already exists", room.Number), nil)
	}
	r.rooms[room.Number] = &roomEntry{room: room}
	r.mu.Unlock()

	r.persistRoom(&room)
	return nil
}

// GetRoom trả về bản sao thông tin phòng
func (r *RoomRegistry) GetRoom(number string) (*models.Room, error) {
	entry := r.entry(number)
	if entry == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("room %s not found", number), apperrors.ErrRoomNotFound)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	room := entry.room
	return &room, nil
}

// Snapshot trả về bản sao toàn bộ phòng, sắp theo số phòng
func (r *RoomRegistry) Snapshot() []models.Room {
	r.mu.RLock()
	entries := make([]*roomEntry, 0, len(r.rooms))
	for _, e := range r.rooms {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	rooms := make([]models.Room, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		rooms = append(rooms, e.room)
		e.mu.Unlock()
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms
}

// SetStatus đổi trạng thái phòng cho housekeeping/bảo trì. Không bao giờ
// đặt được occupied trực tiếp, và phòng đang occupied phải trả qua
// check-out hoặc move-room trước.
func (r *RoomRegistry) SetStatus(number, newStatus string) error {
	probe := models.Room{Number: number, Status: newStatus}
	if err := probe.ValidateStatus(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), err)
	}
	if newStatus == constants.RoomStatusOccupied {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition,
			fmt.Sprintf("room %s: occupied is bound by the reservation lifecycle, not set directly", number), nil)
	}

	entry := r.entry(number)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("room %s not found", number), apperrors.ErrRoomNotFound)
	}

	entry.mu.Lock()
	if entry.room.Status == constants.RoomStatusOccupied {
		status := entry.room.Status
		entry.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition,
			fmt.Sprintf("room %s is %s, release it through the reservation lifecycle first", number, status), nil)
	}
	if entry.room.Status == constants.RoomStatusDirty && newStatus == constants.RoomStatusClean {
		now := r.clock.Now()
		entry.room.LastCleaned = &now
	}
	entry.room.Status = newStatus
	room := entry.room
	entry.mu.Unlock()

	r.persistRoom(&room)
	r.notifyChange()
	return nil
}

// Retire ngừng khai thác phòng nhưng không xóa, vì folio cũ còn tham chiếu
func (r *RoomRegistry) Retire(number string) error {
	entry := r.entry(number)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("room %s not found", number), apperrors.ErrRoomNotFound)
	}
	entry.mu.Lock()
	if entry.room.Status == constants.RoomStatusOccupied {
		entry.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition,
			fmt.Sprintf("room %s is occupied and cannot be retired", number), apperrors.ErrRoomOccupied)
	}
	entry.room.Retired = true
	room := entry.room
	entry.mu.Unlock()

	r.persistRoom(&room)
	r.notifyChange()
	return nil
}

// FindAvailable trả về các phòng đúng loại, không bảo trì/hỏng và không
// trùng lịch với bất kỳ lượt gán nào trong khoảng ngày yêu cầu
func (r *RoomRegistry) FindAvailable(roomType string, from, to time.Time) []string {
	r.mu.RLock()
	entries := make([]*roomEntry, 0, len(r.rooms))
	for _, e := range r.rooms {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	var numbers []string
	for _, e := range entries {
		e.mu.Lock()
		ok := !e.room.Retired &&
			e.room.Type == roomType &&
			e.room.Status != constants.RoomStatusMaintenance &&
			e.room.Status != constants.RoomStatusOutOfOrder &&
			!e.overlaps(from, to)
		number := e.room.Number
		e.mu.Unlock()
		if ok {
			numbers = append(numbers, number)
		}
	}
	sort.Strings(numbers)
	return numbers
}

// Assign gán phòng cho reservation trong khoảng lưu trú. Hai check-in
// tranh nhau cùng một phòng thì bên vào critical section trước thắng,
// bên sau nhận ROOM_UNAVAILABLE.
func (r *RoomRegistry) Assign(caller *ReservationService, number, reservationID string, from, to time.Time) error {
	if err := r.authorize(caller); err != nil {
		return err
	}
	entry := r.entry(number)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("room %s not found", number), apperrors.ErrRoomNotFound)
	}

	entry.mu.Lock()
	if entry.room.Retired ||
		entry.room.Status == constants.RoomStatusMaintenance ||
		entry.room.Status == constants.RoomStatusOutOfOrder ||
		entry.room.Status == constants.RoomStatusOccupied {
		status := entry.room.Status
		entry.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeRoomUnavailable,
			fmt.Sprintf("room %s is not available (status %s)", number, status), apperrors.ErrRoomNotAvailable)
	}
	if entry.overlaps(from, to) {
		entry.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeRoomUnavailable,
			fmt.Sprintf("room %s already has an overlapping stay", number), apperrors.ErrRoomNotAvailable)
	}
	entry.assignments = append(entry.assignments, assignment{
		reservationID: reservationID,
		from:          from,
		to:            to,
	})
	entry.room.Status = constants.RoomStatusOccupied
	entry.room.OccupantID = &reservationID
	room := entry.room
	entry.mu.Unlock()

	r.persistRoom(&room)
	r.notifyChange()
	r.log.Info("Đã gán phòng %s cho reservation %s", number, reservationID)
	return nil
}

// Release trả phòng khi check-out hoặc move-room: phòng chuyển sang dirty
// và một task dọn phòng được tạo
func (r *RoomRegistry) Release(caller *ReservationService, number string) error {
	if err := r.authorize(caller); err != nil {
		return err
	}
	entry := r.entry(number)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("room %s not found", number), apperrors.ErrRoomNotFound)
	}

	entry.mu.Lock()
	if entry.room.Status != constants.RoomStatusOccupied || entry.room.OccupantID == nil {
		status := entry.room.Status
		entry.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition,
			fmt.Sprintf("room %s is not occupied (status %s)", number, status), nil)
	}
	occupant := *entry.room.OccupantID
	for i := range entry.assignments {
		if entry.assignments[i].reservationID == occupant && !entry.assignments[i].released {
			entry.assignments[i].released = true
			break
		}
	}
	entry.room.Status = constants.RoomStatusDirty
	entry.room.OccupantID = nil
	room := entry.room
	entry.mu.Unlock()

	r.persistRoom(&room)
	r.createCleaningTask(number)
	r.notifyChange()
	r.log.Info("Đã trả phòng %s (reservation %s)", number, occupant)
	return nil
}

// ListTasks trả về danh sách task dọn phòng, task mới tạo trước
func (r *RoomRegistry) ListTasks() []models.HousekeepingTask {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tasks := make([]models.HousekeepingTask, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	return tasks
}

// CompleteTask hoàn thành task dọn phòng và đưa phòng dirty về clean
func (r *RoomRegistry) CompleteTask(taskID string) error {
	r.mu.Lock()
	task, ok := r.tasks[taskID]
	if !ok {
		r.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("housekeeping task %s not found", taskID), nil)
	}
	if task.Status == constants.TaskStatusCompleted {
		r.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeValidation,
			fmt.Sprintf("housekeeping task %s is already completed", taskID), nil)
	}
	now := r.clock.Now()
	task.Status = constants.TaskStatusCompleted
	task.CompletedAt = &now
	r.tasks[taskID] = task
	r.mu.Unlock()

	if err := r.store.SaveHousekeepingTask(&task); err != nil {
		r.log.Error("Không lưu được housekeeping task %s: %v", task.ID, err)
	}

	if err := r.SetStatus(task.RoomNumber, constants.RoomStatusClean); err != nil {
		// Phòng có thể đã chuyển sang bảo trì trong lúc dọn
		r.log.Warn("Không đưa được phòng %s về clean: %v", task.RoomNumber, err)
	}
	return nil
}

func (r *RoomRegistry) createCleaningTask(roomNumber string) {
	task := models.HousekeepingTask{
		ID:         uuid.NewString(),
		RoomNumber: roomNumber,
		TaskType:   constants.TaskTypeCheckoutCleaning,
		Status:     constants.TaskStatusPending,
		CreatedAt:  r.clock.Now(),
	}
	r.mu.Lock()
	r.tasks[task.ID] = task
	r.mu.Unlock()

	if err := r.store.SaveHousekeepingTask(&task); err != nil {
		r.log.Error("Không lưu được housekeeping task %s: %v", task.ID, err)
	}
}

// Restore nạp lại danh sách phòng từ store lúc khởi động
func (r *RoomRegistry) Restore() error {
	rooms, err := r.store.LoadRooms()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range rooms {
		r.rooms[rooms[i].Number] = &roomEntry{room: rooms[i]}
	}
	return nil
}

// restoreAssignment dựng lại bảng gán phòng từ store lúc khởi động;
// trạng thái phòng đã được nạp sẵn nên không đổi ở đây
func (r *RoomRegistry) restoreAssignment(number, reservationID string, from, to time.Time) {
	entry := r.entry(number)
	if entry == nil {
		return
	}
	entry.mu.Lock()
	entry.assignments = append(entry.assignments, assignment{
		reservationID: reservationID,
		from:          from,
		to:            to,
	})
	entry.mu.Unlock()
}

func (r *RoomRegistry) authorize(caller *ReservationService) error {
	if caller == nil || caller != r.binder {
		return apperrors.NewAppError(apperrors.ErrCodeForbidden,
			"room occupancy can only be changed by the reservation state machine", nil)
	}
	return nil
}

func (r *RoomRegistry) entry(number string) *roomEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[number]
}

// overlaps kiểm tra khoảng [from, to) có đè lên lượt gán nào chưa trả không
func (e *roomEntry) overlaps(from, to time.Time) bool {
	for i := range e.assignments {
		a := &e.assignments[i]
		if a.released {
			continue
		}
		if from.Before(a.to) && a.from.Before(to) {
			return true
		}
	}
	return false
}

func (r *RoomRegistry) persistRoom(room *models.Room) {
	if err := r.store.SaveRoom(room); err != nil {
		r.log.Error("Không lưu được phòng %s vào store: %v", room.Number, err)
	}
}

func (r *RoomRegistry) notifyChange() {
	if r.onChange != nil {
		r.onChange()
	}
}
