package repository

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// VideoFilter 是getAllVideos的过滤与排序参数
// ViewerID用于“未发布的视频只有作者自己能看到”这条规则
type VideoFilter struct {
	Query    string // 标题模糊搜索
	OwnerID  uint64 // 只看某个作者
	SortBy   string // created_at / duration / title / like_count
	SortType string // asc / desc
	ViewerID uint64 // 当前请求者，0表示匿名
}

// 排序字段白名单，防止把查询参数直接拼进ORDER BY
var videoSortColumns = map[string]bool{
	"created_at": true,
	"duration":   true,
	"title":      true,
	"like_count": true,
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, videoID uint64) (*model.Video, error)
	FindByIDs(ctx context.Context, videoIDs []uint64) ([]model.Video, error)
	Search(ctx context.Context, filter VideoFilter, p pagination.Params) ([]model.Video, int64, error)
	Update(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, videoID uint64) error

	// 冗余计数由consumer异步维护
	IncrementLikeCount(ctx context.Context, videoID uint64) error
	DecrementLikeCount(ctx context.Context, videoID uint64) error

	GetVideoCache(ctx context.Context, videoID uint64) (*model.Video, error)
	SetVideoCache(ctx context.Context, video *model.Video) error
	InvalidateVideoCache(ctx context.Context, videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 返回一个新的、绑定到事务的实例；事务里不碰Redis
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{
		db: tx,
	}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// 利用videoID找视频，preload其中的Owner结构
// 这里不走缓存，缓存在service层配合singleflight使用
func (r *videoRepository) FindByID(ctx context.Context, videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Preload("Owner").First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) FindByIDs(ctx context.Context, videoIDs []uint64) ([]model.Video, error) {
	var videos []model.Video
	if len(videoIDs) == 0 {
		return videos, nil
	}
	err := r.db.WithContext(ctx).Preload("Owner").Where("id IN (?)", videoIDs).Find(&videos).Error
	return videos, err
}

// Search 是分页join查询引擎的视频入口：过滤→计数→排序→分页→preload作者
// 总数在分页之前单独计算，totalPages才算得对
func (r *videoRepository) Search(ctx context.Context, filter VideoFilter, p pagination.Params) ([]model.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{})

	// 未发布的视频只对作者本人可见
	if filter.ViewerID != 0 {
		query = query.Where("published = ? OR owner_id = ?", true, filter.ViewerID)
	} else {
		query = query.Where("published = ?", true)
	}
	if filter.OwnerID != 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Query != "" {
		query = query.Where("title LIKE ?", "%"+filter.Query+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if !videoSortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortType := "desc"
	if filter.SortType == "asc" {
		sortType = "asc"
	}

	var videos []model.Video
	err := query.
		Preload("Owner").
		Order(fmt.Sprintf("%s %s", sortBy, sortType)).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) Update(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *videoRepository) Delete(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Video{}, videoID).Error
}

func (r *videoRepository) IncrementLikeCount(ctx context.Context, videoID uint64) error {
	// 表达式原子更新：UPDATE `videos` SET `like_count` = `like_count` + 1 WHERE id = ?
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
}

func (r *videoRepository) DecrementLikeCount(ctx context.Context, videoID uint64) error {
	// like_count > 0 防止计数被减成下溢
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ? AND like_count > 0", videoID).
		UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// 从Redis缓存中获取单个Video信息，缓存没有但Redis正常时返回(nil, nil)
func (r *videoRepository) GetVideoCache(ctx context.Context, videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	key := r.keyVideoInfo(videoID)
	videoJSON, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err // Redis本身出错了
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// 将单个视频信息存入Redis缓存，过期时间加随机抖动防止缓存雪崩
func (r *videoRepository) SetVideoCache(ctx context.Context, video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	key := r.keyVideoInfo(video.ID)
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(ctx, key, videoJSON, expiration).Err()
}

// 视频更新或删除后让缓存失效
func (r *videoRepository) InvalidateVideoCache(ctx context.Context, videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(ctx, r.keyVideoInfo(videoID)).Err()
}
