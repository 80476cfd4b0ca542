package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Catalog
	&MaterialPrice{},
	&Product{},
	&ProductStone{},
	// Storefront
	&ProductLike{},
	&ProductFavorite{},
	&ProductComment{},
}
