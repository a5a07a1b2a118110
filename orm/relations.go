package orm

// LinkOptionalBelongsTo sets the relation field of every child whose foreign key
// is present and found among parents. Other children are left untouched.
func LinkOptionalBelongsTo[
	CP Identifiable[CID],
	CID comparable,
	PP Identifiable[PID],
	PID comparable,
](
	children *Collection[CP, CID],
	parents *Collection[PP, PID],
	foreignKeyFieldPtr func(CP) *PID, // on the child
	relationFieldPtr func(CP) *PP, // on the child
) {
	children.ForEach(func(child CP) {
		fkPtr := foreignKeyFieldPtr(child)
		if fkPtr == nil {
			return
		}
		if parent, ok := parents.itemsMap[*fkPtr]; ok {
			*relationFieldPtr(child) = parent
		}
	})
}

// LinkHasMany groups children under their parent, in child load order.
// Parents without children get an empty slice.
func LinkHasMany[
	PP Identifiable[PID],
	PID comparable,
	CP Identifiable[CID],
	CID comparable,
](
	parents *Collection[PP, PID],
	children *Collection[CP, CID],
	foreignKey func(CP) PID, // on the child
	relationFieldPtr func(PP) *[]CP, // on the parent
) {
	grouped := make(map[PID][]CP, parents.Len())
	children.ForEach(func(child CP) {
		pid := foreignKey(child)
		grouped[pid] = append(grouped[pid], child)
	})
	parents.ForEach(func(parent PP) {
		kids := grouped[parent.GetID()]
		if kids == nil {
			kids = []CP{}
		}
		*relationFieldPtr(parent) = kids
	})
}
