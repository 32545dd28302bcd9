package fixture

import "github.com/tetoca/tetoca-go/internal/models"

// Demo credentials accepted by the fixture login.
const (
	DemoEmail    = "juan.perez@email.com"
	DemoPassword = "123456"
)

func seedUsers() []models.User {
	return []models.User{
		{
			ID:       "u1",
			Name:     "Juan Pérez",
			Email:    DemoEmail,
			Phone:    "987654321",
			IsActive: true,
		},
	}
}

func seedCategories() []models.Category {
	raw := []models.CategoryData{
		{ID: "1", Name: "Documentos", IconName: "document-text", Color: "#4b7bec"},
		{ID: "2", Name: "Vivienda", IconName: "home", Color: "#2ecc71"},
		{ID: "3", Name: "Vehículos", IconName: "car", Color: "#e74c3c"},
		{ID: "4", Name: "Educación", IconName: "school", Color: "#f39c12"},
		{ID: "5", Name: "Empresas", IconName: "business", Color: "#9b59b6"},
		{ID: "6", Name: "Salud", IconName: "medkit", Color: "#3498db"},
		{ID: "7", Name: "Identidad", IconName: "people", Color: "#e67e22"},
		{ID: "8", Name: "Impuestos", IconName: "card", Color: "#16a085"},
	}
	out := make([]models.Category, 0, len(raw))
	for _, c := range raw {
		out = append(out, models.NewCategory(c))
	}
	return out
}

func seedEnterprises() []models.Enterprise {
	raw := []models.EnterpriseData{
		{
			ID:           "1",
			Name:         "Banco de Crédito del Perú",
			ShortName:    "BCP",
			Type:         "Entidad bancaria",
			Address:      "Av. Independencia 123, Arequipa",
			Schedule:     "Lun - Vie: 9:00 - 18:00, Sáb: 9:00 - 13:00",
			Phone:        "+51 954 123 456",
			ActiveQueues: 4,
			TenantID:     "t1",
		},
		{
			ID:           "2",
			Name:         "RENIEC",
			ShortName:    "RENIEC",
			Type:         "Entidad gubernamental",
			Address:      "Av. Dolores Prolongación 456, Arequipa",
			Schedule:     "Lun - Vie: 8:00 - 17:00",
			Phone:        "+51 954 789 123",
			ActiveQueues: 2,
			TenantID:     "t2",
		},
		{
			ID:           "3",
			Name:         "Clínica Arequipa",
			ShortName:    "CA",
			Type:         "Centro de salud",
			Address:      "Av. Bolognesi s/n, Yanahuara",
			Schedule:     "Lun - Sáb: 7:00 - 20:00",
			Phone:        "+51 954 321 654",
			ActiveQueues: 1,
			TenantID:     "t3",
		},
	}
	out := make([]models.Enterprise, 0, len(raw))
	for _, e := range raw {
		out = append(out, models.NewEnterprise(e))
	}
	return out
}

func seedQueues() map[string][]models.Queue {
	raw := map[string][]models.QueueData{
		"1": {
			{ID: "1", Name: "Operaciones en ventanilla", Icon: "cash-outline", PeopleWaiting: 12, AvgTime: "15 min", EnterpriseID: "1"},
			{ID: "2", Name: "Atención al cliente", Icon: "people-outline", PeopleWaiting: 8, AvgTime: "20 min", EnterpriseID: "1"},
			{ID: "3", Name: "Apertura de cuentas", Icon: "document-text-outline", PeopleWaiting: 5, AvgTime: "25 min", EnterpriseID: "1"},
			{ID: "4", Name: "Préstamos y créditos", Icon: "card-outline", PeopleWaiting: 3, AvgTime: "30 min", EnterpriseID: "1"},
		},
		"2": {
			{ID: "5", Name: "Trámites generales", Icon: "document-outline", PeopleWaiting: 20, AvgTime: "35 min", EnterpriseID: "2"},
			{ID: "6", Name: "DNI y pasaportes", Icon: "card-outline", PeopleWaiting: 15, AvgTime: "25 min", EnterpriseID: "2"},
		},
		"3": {
			{ID: "7", Name: "Consulta externa", Icon: "medkit-outline", PeopleWaiting: 6, AvgTime: "18 min", EnterpriseID: "3"},
		},
	}
	out := make(map[string][]models.Queue, len(raw))
	for enterpriseID, queues := range raw {
		bucket := make([]models.Queue, 0, len(queues))
		for _, q := range queues {
			bucket = append(bucket, models.NewQueue(q))
		}
		out[enterpriseID] = bucket
	}
	return out
}
