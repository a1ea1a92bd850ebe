package models

// Metric — вид активности, по которой ведётся прогресс пользователя.
type Metric string

const (
	MetricPosts    Metric = "posts"
	MetricComments Metric = "comments"
)

// Metrics — все поддерживаемые метрики в порядке отображения.
var Metrics = []Metric{MetricPosts, MetricComments}

// Valid сообщает, входит ли метрика в фиксированный набор.
func (m Metric) Valid() bool {
	return m == MetricPosts || m == MetricComments
}

// Icon — иконка достижения для отображения в профиле.
func (m Metric) Icon() string {
	switch m {
	case MetricPosts:
		return "📝"
	case MetricComments:
		return "🗨️"
	default:
		return ""
	}
}

// Label — подпись достижения.
func (m Metric) Label() string {
	switch m {
	case MetricPosts:
		return "Posts creados"
	case MetricComments:
		return "Comentarios"
	default:
		return ""
	}
}

// LevelUpType — тип уведомления о повышении уровня для метрики.
func (m Metric) LevelUpType() NotificationType {
	if m == MetricPosts {
		return NotificationLevelUpPost
	}

	return NotificationLevelUpComment
}

// Achievement — счётчик прогресса (users/{id}/logros/{metric}).
// В покое выполняется 0 <= Current < Goal, Goal >= 1, Level >= 1.
// Version растёт на каждой записи и служит для compare-and-swap.
type Achievement struct {
	UserID  string `bson:"userId" json:"user_id"`
	Metric  Metric `bson:"type" json:"metric"`
	Current int64  `bson:"current" json:"current"`
	Goal    int64  `bson:"goal" json:"goal"`
	Level   int64  `bson:"level" json:"level"`
	Icon    string `bson:"icon,omitempty" json:"icon,omitempty"`
	Label   string `bson:"label,omitempty" json:"label,omitempty"`
	Version int64  `bson:"version" json:"-"`
}

// AchievementKey — ключ документа счётчика.
func AchievementKey(userID string, metric Metric) string {
	return userID + "/" + string(metric)
}
