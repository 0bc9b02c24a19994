// Package seed bundles the demo dataset used to initialize an empty store.
package seed

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"stylos/internal/core/id"
	"stylos/internal/core/types"
	"stylos/internal/domain/auth"
	"stylos/internal/domain/catalog/client"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/finance"
	"stylos/internal/domain/orders"
)

// DemoPassword is the password shared by the bundled demo accounts.
const DemoPassword = "stylos123"

// Dataset is the demo state loaded into an empty store.
type Dataset struct {
	Users    []*auth.User
	Clients  []*client.Client
	Products []*product.Product
	Orders   []*orders.Order
	Expenses []*finance.Expense
}

// Demo builds the demo dataset. IDs are generated fresh on each call.
func Demo() (*Dataset, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}

	admin := auth.NewUser("Carlos Admin", "admin@stylos.com", auth.RoleAdmin)
	admin.Avatar = "https://i.pravatar.cc/150?u=1"
	warehouse := auth.NewUser("Julia Estoque", "estoque@stylos.com", auth.RoleStock)
	warehouse.Avatar = "https://i.pravatar.cc/150?u=2"
	sales := auth.NewUser("Marcos Vendas", "vendas@stylos.com", auth.RoleSales)
	sales.Avatar = "https://i.pravatar.cc/150?u=3"
	for _, u := range []*auth.User{admin, warehouse, sales} {
		u.PasswordHash = string(hash)
		ds.Users = append(ds.Users, u)
	}

	school := client.New("Escola Municipal Risoleta", client.TypeOrganization)
	school.Document = "12.345.678/0001-90"
	school.Email = "contato@risoleta.edu.br"
	school.Phone = "(11) 98765-4321"
	school.City = "São Paulo"
	school.Address = "Rua das Flores, 123"

	joao := client.New("João da Silva", client.TypeIndividual)
	joao.Document = "123.456.789-00"
	joao.Email = "joao@gmail.com"
	joao.Phone = "(11) 91234-5678"
	joao.City = "São Paulo"
	joao.Address = "Av. Paulista, 1000"

	ds.Clients = append(ds.Clients, school, joao)

	shirt := product.New("Camisa Uniforme Padrão", "Camisa")
	shirt.Description = "Camisa escolar com brasão bordado"
	shirt.Price = types.MustMoney("65.00")
	shirt.Cost = types.MustMoney("25.00")
	shirt.MinStock = 30
	shirt.Image = "https://picsum.photos/200/200?random=1"
	for _, v := range []struct {
		size  string
		stock int
	}{
		{"08", 15}, {"10", 20}, {"12", 8}, {"14", 12}, {"PP", 5},
		{"P", 10}, {"M", 15}, {"G", 8}, {"GG", 4}, {"EXG", 2},
	} {
		shirt.AddVariant(v.size, "Branco", v.stock, "ESC-POLO-"+v.size, "Polo")
	}

	helanca := product.New("Calça Helanca Escolar", "Calças de Escola")
	helanca.Description = "Calça de helanca azul marinho"
	helanca.Price = types.MustMoney("80.00")
	helanca.Cost = types.MustMoney("35.00")
	helanca.MinStock = 20
	helanca.Image = "https://picsum.photos/200/200?random=2"
	for _, v := range []struct {
		size  string
		stock int
	}{
		{"08", 10}, {"10", 12}, {"12", 15}, {"14", 8}, {"PP", 5},
		{"P", 7}, {"M", 9}, {"G", 6}, {"GG", 3}, {"EXG", 1},
	} {
		helanca.AddVariant(v.size, "Azul Marinho", v.stock, "ESC-HEL-"+v.size, "")
	}

	tactel := product.New("Calça Tactel Escolar", "Calças de Escola")
	tactel.Description = "Calça de tactel azul marinho"
	tactel.Price = types.MustMoney("85.00")
	tactel.Cost = types.MustMoney("38.00")
	tactel.MinStock = 20
	tactel.Image = "https://picsum.photos/200/200?random=5"
	for _, v := range []struct {
		size  string
		stock int
	}{
		{"08", 5}, {"10", 8}, {"12", 10}, {"14", 6}, {"PP", 4},
		{"P", 6}, {"M", 8}, {"G", 5}, {"GG", 2}, {"EXG", 1},
	} {
		tactel.AddVariant(v.size, "Azul Marinho", v.stock, "ESC-TAC-"+v.size, "")
	}

	jacket := product.New("Jaqueta Tactel Forrada", "Jaqueta")
	jacket.Description = "Jaqueta de inverno com capuz"
	jacket.Price = types.MustMoney("150.00")
	jacket.Cost = types.MustMoney("70.00")
	jacket.MinStock = 10
	jacket.Image = "https://picsum.photos/200/200?random=3"
	for _, v := range []struct {
		size  string
		stock int
	}{
		{"08", 3}, {"10", 4}, {"12", 5}, {"14", 2}, {"PP", 1},
		{"P", 2}, {"M", 3}, {"G", 2}, {"GG", 1}, {"EXG", 0},
	} {
		jacket.AddVariant(v.size, "Azul/Branco", v.stock, "JAQ-"+v.size, "")
	}

	brim := product.New("Calça Brim Profissional", "Calças de brim")
	brim.Description = "Calça resistente para trabalho pesado"
	brim.Price = types.MustMoney("120.00")
	brim.Cost = types.MustMoney("55.00")
	brim.MinStock = 15
	brim.Image = "https://picsum.photos/200/200?random=4"
	brim.AddVariant("40", "Cinza", 10, "CALCA-CZ-40", "")

	ds.Products = append(ds.Products, shirt, helanca, tactel, jacket, brim)

	now := time.Now().UTC()
	shirtM := shirt.FindVariant("M", "Branco")
	helancaM := helanca.FindVariant("M", "Azul Marinho")
	demoOrder := &orders.Order{
		ID:           id.New(),
		Code:         id.NewOrderCode(),
		ClientID:     joao.ID,
		ClientName:   joao.Name,
		ClientPhone:  joao.Phone,
		ClientCity:   joao.City,
		CreatedAt:    now,
		DeliveryDate: now.Add(7 * 24 * time.Hour),
		Status:       orders.StatusNew,
		CostTotal:    types.MustMoney("60.00"),
		PaymentMethod: orders.PaymentPix,
		Version:      1,
		Items: []orders.Item{
			orders.NewItem(shirt.ID, &shirtM.ID, shirt.Name, "M", "Branco", 1, shirt.Price),
			orders.NewItem(helanca.ID, &helancaM.ID, helanca.Name, "M", "Azul Marinho", 1, helanca.Price),
		},
	}
	demoOrder.RecalculateTotals()
	ds.Orders = append(ds.Orders, demoOrder)

	ds.Expenses = append(ds.Expenses,
		finance.New("Conta de Luz", types.MustMoney("350.00"), finance.CategoryFixed, now),
		finance.New("Compra de Tecido", types.MustMoney("1200.00"), finance.CategoryRawMaterial, now),
	)

	return ds, nil
}
