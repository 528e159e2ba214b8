package authz

// Имена привилегий. Должны совпадать со значениями в таблице permissions
// (см. сидер). Формат: "<ресурс>:<действие>".
const (
	// Оборудование
	EquipmentCreate = "equipment:create"
	EquipmentView   = "equipment:view"
	EquipmentUpdate = "equipment:update"
	EquipmentDelete = "equipment:delete"
	EquipmentScrap  = "equipment:scrap"

	// Заявки на обслуживание
	RequestsCreate = "requests:create"
	RequestsView   = "requests:view"
	RequestsUpdate = "requests:update"
	RequestsDelete = "requests:delete"

	// Команды обслуживания
	TeamsCreate = "teams:create"
	TeamsView   = "teams:view"
	TeamsUpdate = "teams:update"
	TeamsDelete = "teams:delete"

	// Справочники (категории оборудования, отделы)
	CatalogsCreate = "catalogs:create"
	CatalogsView   = "catalogs:view"
	CatalogsUpdate = "catalogs:update"
	CatalogsDelete = "catalogs:delete"

	// Пользователи и роли
	UsersCreate     = "users:create"
	UsersView       = "users:view"
	UsersUpdate     = "users:update"
	UsersDelete     = "users:delete"
	RolesView       = "roles:view"
	PermissionsView = "permissions:view"

	// Отчеты и дашборд
	ReportsView   = "reports:view"
	DashboardView = "dashboard:view"

	// Гарантийные уведомления
	WarrantySend = "warranty:send"

	// Область видимости заявок
	ScopeOwn  = "scope:own"
	ScopeTeam = "scope:team"
	ScopeAll  = "scope:all"

	// Полный доступ без проверок
	Superuser = "superuser"
)

// All перечисляет все привилегии для сидера.
var All = []string{
	EquipmentCreate, EquipmentView, EquipmentUpdate, EquipmentDelete, EquipmentScrap,
	RequestsCreate, RequestsView, RequestsUpdate, RequestsDelete,
	TeamsCreate, TeamsView, TeamsUpdate, TeamsDelete,
	CatalogsCreate, CatalogsView, CatalogsUpdate, CatalogsDelete,
	UsersCreate, UsersView, UsersUpdate, UsersDelete,
	RolesView, PermissionsView,
	ReportsView, DashboardView,
	WarrantySend,
	ScopeOwn, ScopeTeam, ScopeAll,
	Superuser,
}
