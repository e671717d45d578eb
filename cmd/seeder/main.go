package main

import (
	"Nova_Tube/internal/config"
	"Nova_Tube/internal/model"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 本地开发用的数据填充器，会先删表再重建，不要对生产库跑！
func main() {
	fmt.Println("开始填充测试数据...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("无法连接到数据库: %v", err)
	}
	fmt.Println("数据库连接成功!")

	fmt.Println("正在清理旧数据...")
	db.Migrator().DropTable(
		&model.WatchHistory{},
		&model.PlaylistVideo{},
		&model.Playlist{},
		&model.Subscription{},
		&model.Like{},
		&model.Comment{},
		&model.Tweet{},
		&model.Video{},
		&model.User{},
	)
	db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Tweet{},
		&model.WatchHistory{},
	)
	fmt.Println("数据库迁移成功!")

	rand.Seed(time.Now().UnixNano())

	// 所有测试用户共用同一个密码 "password"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}

	fmt.Println("正在创建用户...")
	userCount := 100
	for i := 0; i < userCount; i++ {
		user := model.User{
			Username: strings.ToLower(faker.Username()),
			Password: string(hashedPassword),
		}
		db.Create(&user)
	}
	fmt.Printf("成功创建 %d 个用户!\n", userCount)

	fmt.Println("正在创建视频...")
	videoCount := 500
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			OwnerID:     uint64(rand.Intn(userCount) + 1),
			Title:       faker.Sentence(),
			Description: faker.Paragraph(),
			Duration:    float64(rand.Intn(600) + 30),
			Published:   true,
			VideoURL:    "https://test.com/video.mp4",
			CoverURL:    "https://test.com/cover.jpg",
		}
		db.Create(&video)
	}
	fmt.Printf("成功创建 %d 个视频!\n", videoCount)

	fmt.Println("正在创建动态...")
	tweetCount := 200
	for i := 0; i < tweetCount; i++ {
		tweet := model.Tweet{
			OwnerID: uint64(rand.Intn(userCount) + 1),
			Content: faker.Sentence(),
		}
		db.Create(&tweet)
	}
	fmt.Printf("成功创建 %d 条动态!\n", tweetCount)

	fmt.Println("正在创建随机点赞...")
	likeCount := 1000
	for i := 0; i < likeCount; i++ {
		like := model.Like{
			UserID:     uint64(rand.Intn(userCount) + 1),
			TargetType: model.TargetVideo,
			TargetID:   uint64(rand.Intn(videoCount) + 1),
		}
		// OnConflict DoNothing：撞唯一索引（重复点赞）时静默跳过
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"}},
			DoNothing: true,
		}).Create(&like)
	}
	fmt.Printf("成功创建(或尝试创建) %d 个随机点赞!\n", likeCount)

	fmt.Println("正在创建随机订阅...")
	subCount := 300
	for i := 0; i < subCount; i++ {
		sub := model.Subscription{
			SubscriberID: uint64(rand.Intn(userCount) + 1),
			ChannelID:    uint64(rand.Intn(userCount) + 1),
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
			DoNothing: true,
		}).Create(&sub)
	}
	fmt.Printf("成功创建(或尝试创建) %d 个随机订阅!\n", subCount)

	// 把likes表的真实计数刷进videos.like_count，让列表页的展示和事实一致
	fmt.Println("正在同步视频点赞计数...")
	db.Exec(`UPDATE videos v SET like_count = (
		SELECT COUNT(*) FROM likes l
		WHERE l.target_type = 'video' AND l.target_id = v.id
	)`)

	fmt.Println("所有测试数据填充完毕!")
}
