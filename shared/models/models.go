package models

// User roles
type UserRole string

const (
	RoleBuyer  UserRole = "buyer"
	RoleSeller UserRole = "seller"
	RoleAdmin  UserRole = "admin"
)

// User is keyed by email: tokens carry only the email and the role is
// looked up again on every gated request. Profile fields (name, photoURL)
// live in Extra.
type User struct {
	ID       ID       `json:"_id,omitempty" bson:"_id,omitempty" gorm:"primaryKey"`
	Email    string   `json:"email" bson:"email" gorm:"uniqueIndex;not null"`
	Role     UserRole `json:"role" bson:"role" gorm:"index"`
	Verified bool     `json:"verified" bson:"verified"`
	Extra    Fields   `json:"-" bson:",inline" gorm:"type:text;serializer:json"`
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return marshalDocument(plain(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var base plain
	extra, err := unmarshalDocument(data, &base)
	if err != nil {
		return err
	}
	*u = User(base)
	u.Extra = extra
	return nil
}

// Product is a seller's listing. Email is the owning seller. Listing details
// (prices, images, condition, ...) are stored as sent in Extra.
type Product struct {
	ID          ID     `json:"_id,omitempty" bson:"_id,omitempty" gorm:"primaryKey"`
	Email       string `json:"email" bson:"email" gorm:"index"`
	CategoryID  string `json:"categoryId" bson:"categoryId" gorm:"index"`
	ProductName string `json:"productName" bson:"productName"`
	Advertise   bool   `json:"advertise" bson:"advertise"`
	Report      bool   `json:"report" bson:"report"`
	Verified    bool   `json:"verified" bson:"verified"`
	Extra       Fields `json:"-" bson:",inline" gorm:"type:text;serializer:json"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return marshalDocument(plain(p), p.Extra)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var base plain
	extra, err := unmarshalDocument(data, &base)
	if err != nil {
		return err
	}
	*p = Product(base)
	p.Extra = extra
	return nil
}

type Category struct {
	ID    ID     `json:"_id,omitempty" bson:"_id,omitempty" gorm:"primaryKey"`
	Name  string `json:"name" bson:"name"`
	Extra Fields `json:"-" bson:",inline" gorm:"type:text;serializer:json"`
}

func (c Category) MarshalJSON() ([]byte, error) {
	type plain Category
	return marshalDocument(plain(c), c.Extra)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	type plain Category
	var base plain
	extra, err := unmarshalDocument(data, &base)
	if err != nil {
		return err
	}
	*c = Category(base)
	c.Extra = extra
	return nil
}

// Order is a booking of one product by one buyer. (Email, ProductName) is
// unique. Price, meeting place and contact details are kept in Extra.
type Order struct {
	ID          ID     `json:"_id,omitempty" bson:"_id,omitempty" gorm:"primaryKey"`
	Email       string `json:"email" bson:"email" gorm:"uniqueIndex:idx_orders_buyer_product;not null"`
	ProductName string `json:"productName" bson:"productName" gorm:"uniqueIndex:idx_orders_buyer_product;not null"`
	Extra       Fields `json:"-" bson:",inline" gorm:"type:text;serializer:json"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return marshalDocument(plain(o), o.Extra)
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	var base plain
	extra, err := unmarshalDocument(data, &base)
	if err != nil {
		return err
	}
	*o = Order(base)
	o.Extra = extra
	return nil
}

// Write acknowledgements, shaped like the document store's own results so
// existing clients keep working.

type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   ID   `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    *ID   `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// BookingRejected is returned instead of an InsertResult when the buyer
// already booked the product. It is a normal 200 response.
type BookingRejected struct {
	Acknowledged bool   `json:"acknowledged"`
	Message      string `json:"message"`
}
