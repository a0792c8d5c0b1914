package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"campus-connect-be/internal/constant"
	"campus-connect-be/internal/model"
	"campus-connect-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Registration string
	Name         string
	Email        string
	Password     string
	Role         string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding campus users and support conversation\n")

	users := []seedUser{
		{Registration: "20230001", Name: "Ana Souza", Email: "ana.souza@campus.edu", Password: "senha123", Role: "student"},
		{Registration: "20230002", Name: "Bruno Lima", Email: "bruno.lima@campus.edu", Password: "senha123", Role: "student"},
		{Registration: "19990010", Name: "Carla Mendes", Email: "carla.mendes@campus.edu", Password: "senha123", Role: "teacher"},
		{Registration: "19950003", Name: "Diego Ferreira", Email: "diego.ferreira@campus.edu", Password: "senha123", Role: "coordinator"},
		{Registration: "admin", Name: "Administrador", Email: "admin@campus.edu", Password: "admin123", Role: "admin"},
	}

	seeded := make([]model.User, 0, len(users))
	for _, u := range users {
		var existing model.User
		if err := db.Where("registration = ?", u.Registration).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", u.Registration)
			seeded = append(seeded, existing)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Error hashing password for %s: %v", u.Registration, err)
		}

		record := model.User{
			Id:           uuid.New(),
			Registration: u.Registration,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         u.Role,
			AccessStatus: "active",
		}
		if err := db.Create(&record).Error; err != nil {
			color.Red("Error creating user '%s': %v", u.Registration, err)
			continue
		}
		color.Green("Created user: %s (%s)", u.Name, u.Registration)
		seeded = append(seeded, record)
	}

	if len(seeded) < 2 {
		color.Red("Not enough users to seed a conversation")
		return
	}

	seedSupportConversation(db, seeded[0], seeded[2])

	color.Cyan("\n✅ Seeding completed")
}

// seedSupportConversation creates one support conversation between a student
// and a teacher, with its channel, default subchannel and a few messages.
func seedSupportConversation(db *gorm.DB, student, teacher model.User) {
	var existing model.Conversation
	err := db.Where("type = ?", "support").First(&existing).Error
	if err == nil {
		color.Yellow("Support conversation already exists, skipping...")
		return
	}

	title := "Atendimento"
	conversation := model.Conversation{
		Id:    uuid.New(),
		Title: &title,
		Type:  "support",
	}
	if err := db.Omit("Participants").Create(&conversation).Error; err != nil {
		color.Red("Error creating conversation: %v", err)
		return
	}

	links := []model.ConversationParticipant{
		{ConversationId: conversation.Id, UserId: student.Id},
		{ConversationId: conversation.Id, UserId: teacher.Id},
	}
	if err := db.Create(&links).Error; err != nil {
		color.Red("Error linking participants: %v", err)
		return
	}

	channel := model.Channel{
		Id:             uuid.New(),
		Name:           fmt.Sprintf("Channel-%s", conversation.Id),
		ConversationId: conversation.Id,
	}
	if err := db.Create(&channel).Error; err != nil {
		color.Red("Error creating channel: %v", err)
		return
	}

	subchannel := model.Subchannel{
		Id:        uuid.New(),
		Name:      constant.DefaultSubchannelName,
		ChannelId: channel.Id,
	}
	if err := db.Create(&subchannel).Error; err != nil {
		color.Red("Error creating subchannel: %v", err)
		return
	}

	now := time.Now().UTC()
	studentId := student.Id
	teacherId := teacher.Id
	messages := []model.Message{
		{Id: uuid.New(), Content: "Olá, professora! Tenho uma dúvida sobre a prova.", SubchannelId: subchannel.Id, AuthorId: &studentId, Timestamp: now.Add(-10 * time.Minute)},
		{Id: uuid.New(), Content: "Oi, Ana! Pode perguntar.", SubchannelId: subchannel.Id, AuthorId: &teacherId, Timestamp: now.Add(-8 * time.Minute)},
		{Id: uuid.New(), Content: "O capítulo 5 entra na avaliação?", SubchannelId: subchannel.Id, AuthorId: &studentId, Timestamp: now.Add(-5 * time.Minute)},
	}
	if err := db.Create(&messages).Error; err != nil {
		color.Red("Error creating messages: %v", err)
		return
	}

	color.Green("Created support conversation with %d messages", len(messages))
}
