package graph

// Schema is the GraphQL schema definition, parsed once at startup.
//
// Kept as an SDL string (not codegen) so the whole contract is readable in
// one place. graph-gophers/graphql-go checks it against the resolver types
// when the schema is parsed — a field without a matching resolver method or
// struct field fails at startup, not at query time.
const Schema = `
	# The "Query" type is special: it lists all of the available queries that
	# clients can execute, along with the return type for each.

	type Hello {
		ptBr: String!
		en: String!
	}

	type User {
		id: ID!
		name: String!
		email: String!
	}

	type Login {
		user: User!
		token: String!
	}

	type LoginAuth {
		login: Login!
	}

	type UsersPage {
		users: [User!]!
		page: Int!
		totalPage: Int!
		hasPreviousPage: Boolean!
		hasNextPage: Boolean!
	}

	input UserInput {
		name: String!
		email: String!
		password: String!
	}

	input LoginInput {
		email: String!
		password: String!
		rememberMe: Boolean
	}

	input UserQuery {
		id: ID!
	}

	input UsersQuery {
		limit: Int
		page: Int
	}

	type Query {
		hello: Hello!
		user(data: UserQuery!): User!
		users(data: UsersQuery!): UsersPage!
	}

	type Mutation {
		createUser(data: UserInput!): User!
		login(data: LoginInput!): LoginAuth!
	}

	schema {
		query: Query
		mutation: Mutation
	}
`
