package dominos

import "encoding/json"

// Store is a single branch as returned by the store finder. Immutable once
// fetched.
type Store struct {
	ID                  string
	Name                string
	IsOpen              bool
	CollectionAvailable bool
	// DeliveryAvailable means the store can deliver to the address the
	// search was made with, it is a property of the (store, address) pair.
	DeliveryAvailable bool
	MenuVersion       string
}

// StoreList is the result of a store search: the closest store to the
// search address, when there is one, plus the surrounding stores orders can
// be collected from.
type StoreList struct {
	LocalStore       *Store
	CollectionStores []Store
}

type storeJSON struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	IsOpen                bool   `json:"isOpen"`
	IsCollectionAvailable bool   `json:"isCollectionAvailable"`
	MenuVersion           string `json:"menuVersion"`
}

type storeSearchJSON struct {
	LocalStore           *storeJSON  `json:"localStore"`
	LocalStoreCanDeliver bool        `json:"localStoreCanDeliverToAddress"`
	CollectionStores     []storeJSON `json:"collectionStores"`
}

func (s storeJSON) store(deliveryAvailable bool) Store {
	return Store{
		ID:                  s.ID,
		Name:                s.Name,
		IsOpen:              s.IsOpen,
		CollectionAvailable: s.IsCollectionAvailable,
		DeliveryAvailable:   deliveryAvailable,
		MenuVersion:         s.MenuVersion,
	}
}

func decodeStoreList(body []byte) (*StoreList, error) {
	var wire storeSearchJSON
	err := json.Unmarshal(body, &wire)
	if err != nil {
		return nil, err
	}

	list := &StoreList{}
	if wire.LocalStore != nil {
		local := wire.LocalStore.store(wire.LocalStoreCanDeliver)
		list.LocalStore = &local
	}
	for _, s := range wire.CollectionStores {
		list.CollectionStores = append(list.CollectionStores, s.store(false))
	}
	return list, nil
}
