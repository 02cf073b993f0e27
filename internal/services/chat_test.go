package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/elderbridge-backend/internal/db"
	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

func TestHumanizeResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "contractions",
			in:   "I cannot do that. I will try later.",
			want: "I can't do that. I'll try later.",
		},
		{
			name: "bullets flattened",
			in:   "Here are tips:\n- rest well\n- drink water",
			want: "Here are tips: rest well. drink water.",
		},
		{
			name: "ai phrasing softened",
			in:   "I understand your concern.",
			want: "I see your concern.",
		},
		{
			name: "empty passthrough",
			in:   "",
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, humanizeResponse(tc.in))
		})
	}
}

func newChatFixture(t *testing.T) (ChatService, *fakeGenClient, uuid.UUID, repos.ElderRepo, repos.ReminderRepo) {
	t.Helper()
	dsn := fmt.Sprintf("file:chat_%s?mode=memory&cache=shared", uuid.New().String())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	log := logger.NewNop()
	elderRepo := repos.NewElderRepo(gdb, log)
	youngerRepo := repos.NewYoungerRepo(gdb, log)
	reminderRepo := repos.NewReminderRepo(gdb, log)

	gen := &fakeGenClient{}
	userID := uuid.New()
	service := NewChatService(log, gen, elderRepo, youngerRepo, reminderRepo, "")
	return service, gen, userID, elderRepo, reminderRepo
}

func TestChat_ElderProfileMatch(t *testing.T) {
	service, _, userID, elderRepo, reminderRepo := newChatFixture(t)

	elder := &types.Elder{
		ID:           uuid.New(),
		UserID:       userID,
		Relationship: "father",
		Name:         "Harold",
		Age:          81,
		Phone:        "555-0100",
		LastUpdated:  time.Now(),
		CreatedAt:    time.Now(),
	}
	_, err := elderRepo.Create(context.Background(), nil, elder)
	require.NoError(t, err)
	_, err = reminderRepo.Create(context.Background(), nil, &types.Reminder{
		ID:             uuid.New(),
		UserID:         userID,
		ElderID:        &elder.ID,
		PatientName:    "Harold",
		MedicationName: "Lisinopril",
		Dosage:         "10mg",
		SendTime:       time.Now().Add(time.Hour),
		PhoneNumber:    "555-0100",
		CreatedAt:      time.Now(),
	})
	require.NoError(t, err)

	reply, err := service.Chat(context.Background(), userID, "tell me about harold")
	require.NoError(t, err)
	require.NotNil(t, reply.Profile)
	assert.Equal(t, "Harold", reply.Profile.Name)
	assert.Equal(t, 81, reply.Profile.Age)
	require.Len(t, reply.Reminders, 1)
	assert.Equal(t, "Lisinopril", reply.Reminders[0].MedicationName)
}

func TestChat_NoProfileFallsThroughToGeneration(t *testing.T) {
	service, gen, userID, _, _ := newChatFixture(t)
	gen.generateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "I cannot say.", nil
	}

	reply, err := service.Chat(context.Background(), userID, "what is a good breakfast?")
	require.NoError(t, err)
	assert.Nil(t, reply.Profile)
	assert.Equal(t, "I can't say.", reply.Reply)
}

func TestChat_ProfileIsTenantScoped(t *testing.T) {
	service, gen, userID, elderRepo, _ := newChatFixture(t)
	gen.generateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "no idea", nil
	}

	otherUser := uuid.New()
	_, err := elderRepo.Create(context.Background(), nil, &types.Elder{
		ID:           uuid.New(),
		UserID:       otherUser,
		Relationship: "mother",
		Name:         "Harold",
		LastUpdated:  time.Now(),
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	reply, err := service.Chat(context.Background(), userID, "tell me about harold")
	require.NoError(t, err)
	assert.Nil(t, reply.Profile)
}
