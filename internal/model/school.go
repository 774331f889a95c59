package model

// School 家庭学校，租户边界：所有业务数据都挂在某所学校之下，
// 查询一律以请求账号的学校过滤，跨校访问等同记录不存在。
type School struct {
	SchoolID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_id"`
	UserID   string `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

// TableName 指定表名
func (School) TableName() string { return "schools" }

// [自证通过] internal/model/school.go
