package seed

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/shop-backoffice/internal/domain/product"
)

// CategoryEntry is a catalog category in both seeded languages.
type CategoryEntry struct {
	EN product.CategoryTranslation
	ES product.CategoryTranslation
}

// ProductEntry is a catalog product. Image is an external URL kept as
// reference data; it is never fetched.
type ProductEntry struct {
	Name   string
	NameES string
	Price  decimal.Decimal
	Image  string
}

// CouponEntry is a coupon code with its discount percentage.
type CouponEntry struct {
	Code     string
	Discount int
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// catalogCategories is the seeded category list, in creation order.
var catalogCategories = []CategoryEntry{
	{EN: product.CategoryTranslation{Name: "Electronics", Slug: "electronics"}, ES: product.CategoryTranslation{Name: "Electrónica", Slug: "electronica"}},
	{EN: product.CategoryTranslation{Name: "Clothing", Slug: "clothing"}, ES: product.CategoryTranslation{Name: "Ropa", Slug: "ropa"}},
	{EN: product.CategoryTranslation{Name: "Home & Garden", Slug: "home-garden"}, ES: product.CategoryTranslation{Name: "Hogar y Jardín", Slug: "hogar-jardin"}},
	{EN: product.CategoryTranslation{Name: "Sports & Outdoors", Slug: "sports-outdoors"}, ES: product.CategoryTranslation{Name: "Deportes y Exterior", Slug: "deportes-exterior"}},
	{EN: product.CategoryTranslation{Name: "Books", Slug: "books"}, ES: product.CategoryTranslation{Name: "Libros", Slug: "libros"}},
	{EN: product.CategoryTranslation{Name: "Beauty & Health", Slug: "beauty-health"}, ES: product.CategoryTranslation{Name: "Belleza y Salud", Slug: "belleza-salud"}},
	{EN: product.CategoryTranslation{Name: "Toys & Games", Slug: "toys-games"}, ES: product.CategoryTranslation{Name: "Juguetes y Juegos", Slug: "juguetes-juegos"}},
	{EN: product.CategoryTranslation{Name: "Food & Beverages", Slug: "food-beverages"}, ES: product.CategoryTranslation{Name: "Alimentos y Bebidas", Slug: "alimentos-bebidas"}},
}

// catalogProducts maps an English category slug to the products seeded into it.
var catalogProducts = map[string][]ProductEntry{
	"electronics": {
		{Name: "Wireless Bluetooth Headphones", NameES: "Auriculares Bluetooth Inalámbricos", Price: price("79.99"), Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500"},
		{Name: "Smart Watch Pro", NameES: "Reloj Inteligente Pro", Price: price("249.99"), Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500"},
		{Name: "Portable Power Bank 20000mAh", NameES: "Batería Portátil 20000mAh", Price: price("45.99"), Image: "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=500"},
		{Name: "Wireless Charging Pad", NameES: "Cargador Inalámbrico", Price: price("29.99"), Image: "https://images.unsplash.com/photo-1586816879360-004f5b0c51e3?w=500"},
		{Name: "Mechanical Gaming Keyboard", NameES: "Teclado Mecánico Gaming", Price: price("129.99"), Image: "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?w=500"},
		{Name: "Ultra HD Webcam", NameES: "Webcam Ultra HD", Price: price("89.99"), Image: "https://images.unsplash.com/photo-1587826080692-f439cd0b70da?w=500"},
	},
	"clothing": {
		{Name: "Premium Cotton T-Shirt", NameES: "Camiseta de Algodón Premium", Price: price("34.99"), Image: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500"},
		{Name: "Classic Denim Jacket", NameES: "Chaqueta de Mezclilla Clásica", Price: price("89.99"), Image: "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=500"},
		{Name: "Slim Fit Chinos", NameES: "Pantalones Chinos Slim Fit", Price: price("59.99"), Image: "https://images.unsplash.com/photo-1473966968600-fa801b869a1a?w=500"},
		{Name: "Wool Blend Sweater", NameES: "Suéter de Mezcla de Lana", Price: price("79.99"), Image: "https://images.unsplash.com/photo-1434389677669-e08b4cac3105?w=500"},
		{Name: "Running Sneakers", NameES: "Zapatillas para Correr", Price: price("119.99"), Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500"},
		{Name: "Leather Belt", NameES: "Cinturón de Cuero", Price: price("44.99"), Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500"},
	},
	"home-garden": {
		{Name: "Modern LED Table Lamp", NameES: "Lámpara de Mesa LED Moderna", Price: price("54.99"), Image: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=500"},
		{Name: "Indoor Plant Pot Set", NameES: "Set de Macetas para Interior", Price: price("39.99"), Image: "https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=500"},
		{Name: "Cozy Throw Blanket", NameES: "Manta Acogedora", Price: price("49.99"), Image: "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=500"},
		{Name: "Scented Candle Collection", NameES: "Colección de Velas Aromáticas", Price: price("34.99"), Image: "https://images.unsplash.com/photo-1602028915047-37269d1a73f7?w=500"},
		{Name: "Wall Clock Minimalist", NameES: "Reloj de Pared Minimalista", Price: price("29.99"), Image: "https://images.unsplash.com/photo-1563861826100-9cb868fdbe1c?w=500"},
		{Name: "Kitchen Knife Set", NameES: "Set de Cuchillos de Cocina", Price: price("89.99"), Image: "https://images.unsplash.com/photo-1593618998160-e34014e67546?w=500"},
	},
	"sports-outdoors": {
		{Name: "Yoga Mat Premium", NameES: "Esterilla de Yoga Premium", Price: price("49.99"), Image: "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=500"},
		{Name: "Resistance Bands Set", NameES: "Set de Bandas de Resistencia", Price: price("24.99"), Image: "https://images.unsplash.com/photo-1598289431512-b97b0917affc?w=500"},
		{Name: "Insulated Water Bottle", NameES: "Botella de Agua Térmica", Price: price("34.99"), Image: "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=500"},
		{Name: "Hiking Backpack 40L", NameES: "Mochila de Senderismo 40L", Price: price("79.99"), Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500"},
		{Name: "Fitness Tracker Band", NameES: "Pulsera de Actividad Física", Price: price("59.99"), Image: "https://images.unsplash.com/photo-1575311373937-040b8e1fd5b6?w=500"},
		{Name: "Camping Tent 4-Person", NameES: "Tienda de Campaña 4 Personas", Price: price("149.99"), Image: "https://images.unsplash.com/photo-1504280390367-361c6d9f38f4?w=500"},
	},
	"books": {
		{Name: "The Art of Programming", NameES: "El Arte de la Programación", Price: price("39.99"), Image: "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=500"},
		{Name: "Modern Photography Guide", NameES: "Guía de Fotografía Moderna", Price: price("44.99"), Image: "https://images.unsplash.com/photo-1476275466078-4007374efbbe?w=500"},
		{Name: "Healthy Cooking Recipes", NameES: "Recetas de Cocina Saludable", Price: price("29.99"), Image: "https://images.unsplash.com/photo-1490645935967-10de6ba17061?w=500"},
		{Name: "Business Success Strategies", NameES: "Estrategias de Éxito Empresarial", Price: price("34.99"), Image: "https://images.unsplash.com/photo-1589829085413-56de8ae18c73?w=500"},
		{Name: "Mindfulness & Meditation", NameES: "Mindfulness y Meditación", Price: price("24.99"), Image: "https://images.unsplash.com/photo-1506126613408-eca07ce68773?w=500"},
		{Name: "World History Encyclopedia", NameES: "Enciclopedia de Historia Mundial", Price: price("59.99"), Image: "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=500"},
	},
	"beauty-health": {
		{Name: "Vitamin C Serum", NameES: "Sérum de Vitamina C", Price: price("29.99"), Image: "https://images.unsplash.com/photo-1620916566398-39f1143ab7be?w=500"},
		{Name: "Natural Face Moisturizer", NameES: "Crema Hidratante Facial Natural", Price: price("34.99"), Image: "https://images.unsplash.com/photo-1556228720-195a672e8a03?w=500"},
		{Name: "Essential Oils Set", NameES: "Set de Aceites Esenciales", Price: price("44.99"), Image: "https://images.unsplash.com/photo-1608571423902-eed4a5ad8108?w=500"},
		{Name: "Hair Care Bundle", NameES: "Kit de Cuidado del Cabello", Price: price("49.99"), Image: "https://images.unsplash.com/photo-1522337360788-8b13dee7a37e?w=500"},
		{Name: "Bamboo Toothbrush Set", NameES: "Set de Cepillos de Bambú", Price: price("14.99"), Image: "https://images.unsplash.com/photo-1607613009820-a29f7bb81c04?w=500"},
		{Name: "Digital Body Scale", NameES: "Báscula Digital Corporal", Price: price("39.99"), Image: "https://images.unsplash.com/photo-1576678927484-cc907957088c?w=500"},
	},
	"toys-games": {
		{Name: "Building Blocks 500pcs", NameES: "Bloques de Construcción 500pzs", Price: price("49.99"), Image: "https://images.unsplash.com/photo-1587654780291-39c9404d746b?w=500"},
		{Name: "Remote Control Car", NameES: "Coche de Control Remoto", Price: price("69.99"), Image: "https://images.unsplash.com/photo-1594787318286-3d835c1d207f?w=500"},
		{Name: "Classic Board Game Set", NameES: "Set de Juegos de Mesa Clásicos", Price: price("39.99"), Image: "https://images.unsplash.com/photo-1632501641765-e568d28b0015?w=500"},
		{Name: "Puzzle 1000 Pieces", NameES: "Puzzle 1000 Piezas", Price: price("24.99"), Image: "https://images.unsplash.com/photo-1494059980473-813e73ee784b?w=500"},
		{Name: "Stuffed Animal Plush", NameES: "Peluche de Animal", Price: price("19.99"), Image: "https://images.unsplash.com/photo-1558877385-81a1c7e67d72?w=500"},
		{Name: "Art Supplies Kit", NameES: "Kit de Suministros de Arte", Price: price("34.99"), Image: "https://images.unsplash.com/photo-1513364776144-60967b0f800f?w=500"},
	},
	"food-beverages": {
		{Name: "Organic Coffee Beans 1kg", NameES: "Granos de Café Orgánico 1kg", Price: price("24.99"), Image: "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=500"},
		{Name: "Premium Tea Collection", NameES: "Colección de Té Premium", Price: price("29.99"), Image: "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=500"},
		{Name: "Dark Chocolate Gift Box", NameES: "Caja de Regalo Chocolate Negro", Price: price("34.99"), Image: "https://images.unsplash.com/photo-1549007994-cb92caebd54b?w=500"},
		{Name: "Mixed Nuts Variety Pack", NameES: "Pack Variado de Frutos Secos", Price: price("19.99"), Image: "https://images.unsplash.com/photo-1599599810769-bcde5a160d32?w=500"},
		{Name: "Olive Oil Extra Virgin", NameES: "Aceite de Oliva Virgen Extra", Price: price("22.99"), Image: "https://images.unsplash.com/photo-1474979266404-7eaacbcd87c5?w=500"},
		{Name: "Honey Raw Organic", NameES: "Miel Cruda Orgánica", Price: price("18.99"), Image: "https://images.unsplash.com/photo-1587049352846-4a222e784d38?w=500"},
	},}

// catalogCoupons is the seeded coupon list.
var catalogCoupons = []CouponEntry{
	{Code: "WELCOME10", Discount: 10},
	{Code: "SAVE20", Discount: 20},
	{Code: "FLASH25", Discount: 25},
	{Code: "VIP30", Discount: 30},
	{Code: "HOLIDAY15", Discount: 15},
}

var (
	firstNames = []string{"John", "Emma", "Michael", "Sarah", "David", "Lisa", "James", "Emily", "Robert", "Jennifer"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	cities     = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego", "Dallas", "Austin"}
)

var descriptionsEN = []string{
	"Discover the amazing %s. This premium product offers exceptional quality and outstanding performance. Perfect for everyday use with modern design and durable construction.",
	"Introducing the %s - your perfect companion for a better lifestyle. Crafted with attention to detail and built to last. Experience the difference quality makes.",
	"The %s combines style with functionality. Made from premium materials, this product delivers excellent value and reliability. A must-have addition to your collection.",
}

var descriptionsES = []string{
	"Descubre el increíble %s. Este producto premium ofrece calidad excepcional y rendimiento sobresaliente. Perfecto para el uso diario con diseño moderno y construcción duradera.",
	"Presentamos el %s - tu compañero perfecto para un mejor estilo de vida. Elaborado con atención al detalle y construido para durar. Experimenta la diferencia que hace la calidad.",
	"El %s combina estilo con funcionalidad. Fabricado con materiales premium, este producto ofrece excelente valor y confiabilidad. Una adición imprescindible a tu colección.",
}
